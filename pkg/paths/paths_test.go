package paths

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv(EnvRoot, "/from/env")
		root, err := Root("/explicit")
		require.NoError(t, err)
		assert.Equal(t, "/explicit", root)
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv(EnvRoot, "/from/env")
		root, err := Root("")
		require.NoError(t, err)
		assert.Equal(t, "/from/env", root)
	})

	t.Run("working directory", func(t *testing.T) {
		t.Setenv(EnvRoot, "")
		wd, err := os.Getwd()
		require.NoError(t, err)
		root, err := Root("")
		require.NoError(t, err)
		assert.Equal(t, wd, root)
	})
}

func TestXDGDefaults(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	assert.Equal(t, "/tmp/cache/ezconfig/staging", DefaultStagingDir())
	assert.Equal(t, "/tmp/data/ezconfig/backups", DefaultBackupDir())
}

func TestResolve(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"empty", "", ""},
		{"absolute", "/srv/config/../sync", "/srv/sync"},
		{"relative", "config/sync", "/site/config/sync"},
		{"home", "~/exports", filepath.Join(home, "exports")},
		{"other user", "~bob/x", "/site/~bob/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve("/site", tt.path))
		})
	}
}

func TestResolveDestination(t *testing.T) {
	dirs := map[string]string{"sync": "/site/config/sync", "staging": "/site/config/staging"}

	t.Run("default label", func(t *testing.T) {
		dest, err := ResolveDestination(filesystem.NewMemory(), DestinationRequest{Directories: dirs})
		require.NoError(t, err)
		assert.Equal(t, "/site/config/sync", dest)
	})

	t.Run("explicit label", func(t *testing.T) {
		dest, err := ResolveDestination(filesystem.NewMemory(), DestinationRequest{Label: "staging", Directories: dirs})
		require.NoError(t, err)
		assert.Equal(t, "/site/config/staging", dest)
	})

	t.Run("unknown label", func(t *testing.T) {
		_, err := ResolveDestination(filesystem.NewMemory(), DestinationRequest{Label: "prod", Directories: dirs})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDestination))
		assert.Equal(t, []string{"staging", "sync"}, errors.GetErrorDetails(err)["labels"])
	})

	t.Run("explicit path wins over label", func(t *testing.T) {
		dest, err := ResolveDestination(filesystem.NewMemory(), DestinationRequest{
			Label:       "staging",
			Path:        "/tmp/out",
			Directories: dirs,
		})
		require.NoError(t, err)
		assert.Equal(t, "/tmp/out", dest)
	})

	t.Run("fresh backup directory", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		dest, err := ResolveDestination(fsys, DestinationRequest{
			Fresh:     true,
			Path:      "/ignored",
			BackupDir: "/backups",
			Now:       time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, "/backups/config-export-20240305140709", dest)
		assert.True(t, filesystem.IsDir(fsys, dest))
	})

	t.Run("fresh without backup dir", func(t *testing.T) {
		_, err := ResolveDestination(filesystem.NewMemory(), DestinationRequest{Fresh: true})
		assert.True(t, errors.IsErrorCode(err, errors.ErrDestination))
	})
}

func TestValidateDestination(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/site/config/sync", 0755))
	require.NoError(t, fsys.WriteFile("/site/file.txt", []byte("x"), 0644))

	tests := []struct {
		name string
		dest string
		ok   bool
	}{
		{"existing directory", "/site/config/sync", true},
		{"missing with parent", "/site/config/new", true},
		{"missing parent", "/site/nope/new", false},
		{"parent is a file", "/site/file.txt/new", false},
		{"not a directory", "/site/file.txt", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDestination(fsys, tt.dest)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}

	// The write check leaves nothing behind.
	entries, err := fsys.ReadDir("/site/config/sync")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidateDestinationReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/site/config/sync", 0755))
	fsys := filesystem.NewAferoFS(afero.NewReadOnlyFs(base))

	err := ValidateDestination(fsys, "/site/config/sync")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDestination))
	assert.Equal(t, "/site/config/sync", errors.GetErrorDetails(err)["path"])

	err = ValidateDestination(fsys, "/site/config/new")
	assert.True(t, errors.IsErrorCode(err, errors.ErrDestination))
	assert.Equal(t, "/site/config", errors.GetErrorDetails(err)["path"])
}
