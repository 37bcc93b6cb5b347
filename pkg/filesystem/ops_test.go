package filesystem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fsys := NewOS()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fsys.WriteFile(testFile, testContent, 0644))

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())

	content, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	require.NoError(t, fsys.MkdirAll(filepath.Join(tmpDir, "sub", "dir"), 0755))

	entries, err := fsys.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, fsys.Remove(testFile))
	_, err = fsys.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestReadFileRejectsDirectory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/dir", 0755))

	_, err := fsys.ReadFile("/dir")
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.WriteFile("/a/b.yml", []byte("x"), 0644))

	ok, err := Exists(fsys, "/a/b.yml")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(fsys, "/a/missing.yml")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, IsDir(fsys, "/a"))
	assert.False(t, IsDir(fsys, "/a/b.yml"))
}

func TestCopyFile(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.WriteFile("/src/c.yml", []byte("OLD"), 0640))

	t.Run("creates parent directories", func(t *testing.T) {
		require.NoError(t, CopyFile(fsys, "/src/c.yml", "/dst/deep/nested/c.yml"))

		data, err := fsys.ReadFile("/dst/deep/nested/c.yml")
		require.NoError(t, err)
		assert.Equal(t, "OLD", string(data))
	})

	t.Run("overwrites existing destination", func(t *testing.T) {
		require.NoError(t, fsys.WriteFile("/dst/c.yml", []byte("NEWER"), 0644))
		require.NoError(t, CopyFile(fsys, "/src/c.yml", "/dst/c.yml"))

		data, err := fsys.ReadFile("/dst/c.yml")
		require.NoError(t, err)
		assert.Equal(t, "OLD", string(data))
	})

	t.Run("missing source is an IO error with path", func(t *testing.T) {
		err := CopyFile(fsys, "/src/missing.yml", "/dst/missing.yml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
		assert.Equal(t, "/src/missing.yml", errors.GetErrorDetails(err)["path"])
	})

	t.Run("directory source is rejected", func(t *testing.T) {
		err := CopyFile(fsys, "/src", "/elsewhere")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestScan(t *testing.T) {
	fsys := NewMemory()
	for _, p := range []string{
		"/cfg/b.yml",
		"/cfg/a.yml",
		"/cfg/.htaccess",
		"/cfg/language/fr/a.yml",
		"/cfg/.git/HEAD",
	} {
		require.NoError(t, fsys.WriteFile(p, []byte("x"), 0644))
	}

	t.Run("all files sorted and relative", func(t *testing.T) {
		files, err := Scan(fsys, "/cfg", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{".git/HEAD", ".htaccess", "a.yml", "b.yml", "language/fr/a.yml"}, files)
	})

	t.Run("match filter", func(t *testing.T) {
		files, err := Scan(fsys, "/cfg", func(rel string) bool {
			return strings.HasSuffix(rel, ".yml")
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.yml", "b.yml", "language/fr/a.yml"}, files)
	})

	t.Run("missing root yields nothing", func(t *testing.T) {
		files, err := Scan(fsys, "/nope", nil)
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

type plainFS struct{ FS }

func TestNewScratch(t *testing.T) {
	base := NewMemory()
	require.NoError(t, base.MkdirAll("/target", 0755))
	require.NoError(t, base.WriteFile("/target/a.yml", []byte("BASE"), 0644))

	scratch, err := NewScratch(base)
	require.NoError(t, err)

	require.NoError(t, scratch.WriteFile("/target/a.yml", []byte("SCRATCH"), 0644))
	require.NoError(t, CopyFile(scratch, "/target/a.yml", "/staging/sub/a.yml"))

	data, err := scratch.ReadFile("/staging/sub/a.yml")
	require.NoError(t, err)
	assert.Equal(t, "SCRATCH", string(data))

	data, err = base.ReadFile("/target/a.yml")
	require.NoError(t, err)
	assert.Equal(t, "BASE", string(data))
	ok, err := Exists(base, "/staging")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = NewScratch(plainFS{base})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}
