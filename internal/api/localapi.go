package api

import (
	"errors"
	"io/fs"
	"path"

	"github.com/formulactl/formulactl/internal/sysutil"
	"github.com/spf13/afero"
)

type localAPI struct {
	basePath string
	localFS  afero.Fs
}

func (a localAPI) GetContents(relativePath string) (found bool, contents []byte, err error) {
	absolutePath := path.Join(a.basePath, relativePath)
	contents, err = afero.ReadFile(a.localFS, absolutePath)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
		return
	}
	if err != nil {
		return
	}
	found = true
	return
}

func (a localAPI) LocalFS() afero.Fs {
	return a.localFS
}

func (a localAPI) LocalBasePath() string {
	return a.basePath
}

func (a localAPI) Location() Location {
	return Local
}

// SaveContents atomically writes the given contents to a file at the given
// path, creating parent directories as needed.
func (a localAPI) SaveContents(relativePath string, contents []byte) error {
	return sysutil.WriteFileAtomic(
		a.localFS, path.Join(a.basePath, relativePath), contents, 0644,
	)
}

// NewLocalAPI returns a new local API instance.
func NewLocalAPI(localFS afero.Fs, basePath string) (FormulaAPI, error) {
	return &localAPI{
		basePath: basePath,
		localFS:  localFS,
	}, nil
}
