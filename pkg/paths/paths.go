package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/ezconfig/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot overrides the site root
	EnvRoot = "EZCONFIG_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppName names the XDG subdirectories
	AppName = "ezconfig"

	// StagingDirName is the staging subdirectory of the cache dir
	StagingDirName = "staging"

	// BackupsDirName is the backups subdirectory of the data dir
	BackupsDirName = "backups"
)

// Root returns the absolute site root: explicit if set, then EZCONFIG_ROOT,
// then the current directory.
func Root(explicit string) (string, error) {
	root := explicit
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to get current directory")
		}
		root = wd
	}
	abs, err := filepath.Abs(ExpandHome(root))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid root %q", root)
	}
	return abs, nil
}

// CacheDir returns $XDG_CACHE_HOME/ezconfig.
func CacheDir() string {
	return filepath.Join(xdgDir("XDG_CACHE_HOME", xdg.CacheHome), AppName)
}

// DataDir returns $XDG_DATA_HOME/ezconfig.
func DataDir() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", xdg.DataHome), AppName)
}

// DefaultStagingDir is where copy-through files are held during an export.
func DefaultStagingDir() string {
	return filepath.Join(CacheDir(), StagingDirName)
}

// DefaultBackupDir is the parent of fresh export directories.
func DefaultBackupDir() string {
	return filepath.Join(DataDir(), BackupsDirName)
}

// xdg caches its values at init; the variable is read again so that tests
// and wrappers can move the directories.
func xdgDir(envVar, fallback string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return dir
	}
	return fallback
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}

// Resolve makes path absolute against root. Empty paths stay empty.
func Resolve(root, path string) string {
	if path == "" {
		return ""
	}
	path = ExpandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
