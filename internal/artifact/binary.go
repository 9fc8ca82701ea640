package artifact

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver/v3"
)

// Binary is a file found in a release artifact.
type Binary struct {
	// Path is the file's path inside the artifact, after stripping a single
	// top-level directory the way Homebrew does when it unpacks.
	Path       string
	Executable bool
}

type entry struct {
	path       string
	dir        bool
	executable bool
}

// LocateBinary finds the file `bin.install name` would copy from the
// artifact at artifactPath. Archives are walked; any other file is treated as
// the binary itself.
func LocateBinary(artifactPath, name string) (binary Binary, err error) {
	if _, extErr := archiver.ByExtension(artifactPath); extErr != nil {
		return locateBareBinary(artifactPath, name)
	}

	var entries []entry

	err = archiver.Walk(artifactPath, func(f archiver.File) error {
		entries = append(entries, entry{
			path:       strings.TrimPrefix(path.Clean(entryName(f)), "./"),
			dir:        f.IsDir(),
			executable: f.Mode()&0111 != 0,
		})
		return nil
	})
	if err != nil {
		return
	}

	root := singleRoot(entries)

	var matches []Binary
	for _, e := range entries {
		if e.dir {
			continue
		}
		relativePath := strings.TrimPrefix(e.path, root)
		if relativePath == name {
			matches = append(matches, Binary{Path: relativePath, Executable: e.executable})
		}
	}

	switch len(matches) {
	case 0:
		err = fmt.Errorf("%s does not contain %s", filepath.Base(artifactPath), name)
	case 1:
		binary = matches[0]
	default:
		err = fmt.Errorf("%s contains %s %d times", filepath.Base(artifactPath), name, len(matches))
	}
	return
}

func locateBareBinary(artifactPath, name string) (binary Binary, err error) {
	fi, err := os.Stat(artifactPath)
	if err != nil {
		return
	}
	if fi.Name() != name {
		err = fmt.Errorf("%s is not an archive and is not named %s", fi.Name(), name)
		return
	}
	binary = Binary{Path: name, Executable: fi.Mode()&0111 != 0}
	return
}

func entryName(f archiver.File) string {
	switch header := f.Header.(type) {
	case *tar.Header:
		return header.Name
	case zip.FileHeader:
		return header.Name
	}
	return f.Name()
}

// singleRoot returns "<dir>/" if every entry lives below the same top-level
// directory, and "" otherwise.
func singleRoot(entries []entry) string {
	root := ""
	for i, e := range entries {
		top, _, nested := strings.Cut(e.path, "/")
		if !nested && !e.dir {
			return ""
		}
		if i == 0 {
			root = top
		} else if top != root {
			return ""
		}
	}
	if root == "" {
		return ""
	}
	return root + "/"
}
