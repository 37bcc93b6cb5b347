package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
)

// writeCheckName is written and removed to test whether a directory is writable.
const writeCheckName = ".ezconfig-write-check"

// ValidatePath rejects empty paths, null bytes and overlong paths.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Common filesystem limit
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateDestination checks that an export can write into dest. A missing
// dest needs an existing, writable parent directory; an existing dest must
// itself be a writable directory.
func ValidateDestination(fsys filesystem.FS, dest string) error {
	if err := ValidatePath(dest); err != nil {
		return err
	}

	exists, err := filesystem.Exists(fsys, dest)
	if err != nil {
		return errors.IO(err, errors.ErrFileAccess, "stat", dest)
	}

	if !exists {
		parent := filepath.Dir(dest)
		if !filesystem.IsDir(fsys, parent) {
			return destinationError("the destination parent directory does not exist", parent)
		}
		if !Writable(fsys, parent) {
			return destinationError("the destination parent directory is not writable", parent)
		}
		return nil
	}

	if !filesystem.IsDir(fsys, dest) {
		return destinationError("the destination is not a directory", dest)
	}
	if !Writable(fsys, dest) {
		return destinationError("the destination directory is not writable", dest)
	}
	return nil
}

// Writable reports whether a file can be created in dir.
func Writable(fsys filesystem.FS, dir string) bool {
	check := filepath.Join(dir, writeCheckName)
	if err := fsys.WriteFile(check, nil, 0644); err != nil {
		return false
	}
	_ = fsys.Remove(check)
	return true
}

func destinationError(msg, path string) error {
	return errors.New(errors.ErrDestination, msg).WithDetail("path", path)
}
