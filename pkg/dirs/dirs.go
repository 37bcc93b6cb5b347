// Package dirs supplies the per-environment configuration directories that
// copy-through documents are replicated into.
package dirs

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
)

// ActiveLabel names the active overlay directory where directories are
// offered for editing.
const ActiveLabel = "active"

// Registry maps environment names to directory paths.
// Callers must not list two names for the same path.
type Registry interface {
	Dirs() (map[string]string, error)
}

// StaticRegistry is an explicit name to path mapping.
type StaticRegistry map[string]string

// Dirs returns a copy of the mapping.
func (r StaticRegistry) Dirs() (map[string]string, error) {
	out := make(map[string]string, len(r))
	for name, path := range r {
		out[name] = path
	}
	return out, nil
}

// SiblingRegistry discovers environment directories next to the sync
// directory: every subdirectory of its parent except the sync directory
// itself, the active overlay directory and dot-directories. The active
// overlay never receives replicated files: staging reads from it.
type SiblingRegistry struct {
	FS        filesystem.FS
	SyncDir   string
	ActiveDir string
}

// Dirs scans the parent of the sync directory.
func (r SiblingRegistry) Dirs() (map[string]string, error) {
	out := make(map[string]string)
	sync := filepath.Clean(r.SyncDir)
	active := ""
	if r.ActiveDir != "" {
		active = filepath.Clean(r.ActiveDir)
	}

	parent := filepath.Dir(sync)
	entries, err := r.FS.ReadDir(parent)
	if err != nil {
		return nil, errors.IO(err, errors.ErrFileAccess, "read directory", parent)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(parent, name)
		if path == sync || path == active {
			continue
		}
		out[name] = path
	}
	return out, nil
}

// Without returns the registry's directories minus any whose path is one of
// paths. Export uses it to keep the destination out of its own replication.
func Without(r Registry, paths ...string) (map[string]string, error) {
	all, err := r.Dirs()
	if err != nil {
		return nil, err
	}
	skip := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p != "" {
			skip[filepath.Clean(p)] = true
		}
	}
	for name, path := range all {
		if skip[filepath.Clean(path)] {
			delete(all, name)
		}
	}
	return all, nil
}
