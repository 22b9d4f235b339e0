package filex

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "a", "b")

	require.NoError(t, EnsureDir(dir))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	require.NoError(t, EnsureDir(dir), "second call must succeed")
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "token")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))

	require.Error(t, EnsureDir(p), "should fail when a file exists with the same name")
}

func TestWriteSecret_AndReadTrimmed(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, ".pagescout", "token")

	require.NoError(t, WriteSecret(p, []byte("first\n")))
	require.NoError(t, WriteSecret(p, []byte("  second\n")))

	got, err := ReadTrimmed(p)
	require.NoError(t, err)
	require.Equal(t, "second", got)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(p)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(p))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestReadTrimmed_Missing(t *testing.T) {
	_, err := ReadTrimmed(filepath.Join(t.TempDir(), "nope"))
	require.True(t, errors.Is(err, fs.ErrNotExist))
}
