// Package sysutil contains filesystem helpers shared by the formula API and
// the formula writer.
package sysutil

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// WriteFileAtomic writes data to a temporary file next to filename and renames
// it into place, so readers never observe a partially written file.
func WriteFileAtomic(fsys afero.Fs, filename string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(filename)
	err = fsys.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tempFile, err := afero.TempFile(fsys, dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tempName := tempFile.Name()
	defer func() {
		if err != nil {
			_ = fsys.Remove(tempName)
		}
	}()

	_, err = tempFile.Write(data)
	if closeErr := tempFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", tempName, err)
	}

	err = fsys.Chmod(tempName, perm)
	if err != nil {
		return fmt.Errorf("changing permissions of %s: %w", tempName, err)
	}

	err = fsys.Rename(tempName, filename)
	if err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tempName, filename, err)
	}
	return nil
}

// WriteFileIfChanged writes data to filename unless the file already holds
// exactly data. It reports whether the file was written.
func WriteFileIfChanged(fsys afero.Fs, filename string, data []byte, perm os.FileMode) (bool, error) {
	existing, err := afero.ReadFile(fsys, filename)
	switch {
	case err == nil && bytes.Equal(existing, data):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, err
	}

	err = WriteFileAtomic(fsys, filename, data, perm)
	if err != nil {
		return false, err
	}
	return true, nil
}

// CheckWritable returns an error if dir exists on the OS filesystem but is not
// writable by the current user. Non-OS filesystems are always considered
// writable.
func CheckWritable(fsys afero.Fs, dir string) error {
	if _, ok := fsys.(*afero.OsFs); !ok {
		return nil
	}

	_, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if unix.Access(dir, unix.W_OK) != nil {
		return fmt.Errorf("%s is not writable", dir)
	}
	return nil
}
