package sysutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/formulactl/formulactl/internal/sysutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	fsys := afero.NewMemMapFs()

	err := sysutil.WriteFileAtomic(fsys, "/pkg/brew/expend.rb", []byte("class Expend < Formula\n"), 0644)
	require.NoError(t, err)

	got, err := afero.ReadFile(fsys, "/pkg/brew/expend.rb")
	require.NoError(t, err)
	assert.Equal(t, "class Expend < Formula\n", string(got))

	entries, err := afero.ReadDir(fsys, "/pkg/brew")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileIfChanged(t *testing.T) {
	fsys := afero.NewMemMapFs()

	written, err := sysutil.WriteFileIfChanged(fsys, "/out/expend.rb", []byte("a"), 0644)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = sysutil.WriteFileIfChanged(fsys, "/out/expend.rb", []byte("a"), 0644)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = sysutil.WriteFileIfChanged(fsys, "/out/expend.rb", []byte("b"), 0644)
	require.NoError(t, err)
	assert.True(t, written)
}

func TestCheckWritable(t *testing.T) {
	assert.NoError(t, sysutil.CheckWritable(afero.NewMemMapFs(), "/does/not/matter"))

	dir := t.TempDir()
	assert.NoError(t, sysutil.CheckWritable(afero.NewOsFs(), dir))
	assert.NoError(t, sysutil.CheckWritable(afero.NewOsFs(), filepath.Join(dir, "missing")))

	if os.Geteuid() == 0 {
		t.Skip("root can write everywhere")
	}
	readOnly := filepath.Join(dir, "read-only")
	require.NoError(t, os.Mkdir(readOnly, 0555))
	assert.Error(t, sysutil.CheckWritable(afero.NewOsFs(), readOnly))
}
