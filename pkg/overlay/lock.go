package overlay

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/gofrs/flock"
)

// Locker guards the staging area against concurrent runs.
type Locker interface {
	Acquire() (release func() error, err error)
}

// FileLock is an advisory lock on a file next to the staging directory.
// It works on the real filesystem only.
type FileLock struct {
	Path string
}

// NewFileLock returns the lock guarding stagingDir.
func NewFileLock(stagingDir string) *FileLock {
	return &FileLock{Path: filepath.Clean(stagingDir) + ".lock"}
}

// Acquire takes the lock without waiting. A lock held by another process is
// an ErrLocked error.
func (l *FileLock) Acquire() (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(l.Path), 0755); err != nil {
		return nil, errors.IO(err, errors.ErrDirCreate, "create directory", filepath.Dir(l.Path))
	}

	lock := flock.New(l.Path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errors.IO(err, errors.ErrFileAccess, "lock", l.Path)
	}
	if !locked {
		return nil, errors.New(errors.ErrLocked, "another export is in progress").
			WithDetail("path", l.Path)
	}
	return lock.Unlock, nil
}
