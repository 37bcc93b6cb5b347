// Package overlay shields copy-through documents from the bulk clear/write
// cycle of an export.
//
// Before the export, Stage moves every copy-through file of the target into a
// staging directory, taking the active overlay version when one exists. After
// the export, Restore puts the staged files back over whatever the bulk write
// produced. Replicate seeds per-environment directories with copy-through
// files they do not have yet, and Prune removes excluded documents.
package overlay

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/arthur-debert/ezconfig/pkg/patterns"
	"github.com/rs/zerolog"
)

// Stager performs the overlay file operations on one filesystem.
type Stager struct {
	fs     filesystem.FS
	logger zerolog.Logger
}

// NewStager creates a stager working on fsys.
func NewStager(fsys filesystem.FS) *Stager {
	return &Stager{fs: fsys, logger: logging.GetLogger("overlay")}
}

// WithLogger returns a copy of the stager that logs to logger.
func (s *Stager) WithLogger(logger zerolog.Logger) *Stager {
	return &Stager{fs: s.fs, logger: logger}
}

// Stage copies every file of targetDir matched by copyRules into stagingDir
// at the same relative path. When activeDir holds a file at that relative
// path, the active version replaces both the target file and the staged copy.
// Staging twice with the same inputs yields the same staging contents.
// It returns the relative paths staged.
func (s *Stager) Stage(targetDir, stagingDir string, copyRules patterns.Rules, activeDir string) ([]string, error) {
	if copyRules.Empty() {
		return nil, nil
	}

	files, err := ManagedFiles(s.fs, targetDir, copyRules.Match)
	if err != nil {
		return nil, err
	}
	if err := filesystem.EnsureDir(s.fs, stagingDir); err != nil {
		return nil, err
	}

	for _, rel := range files {
		target := join(targetDir, rel)
		staged := join(stagingDir, rel)
		if err := filesystem.CopyFile(s.fs, target, staged); err != nil {
			return nil, err
		}

		if activeDir == "" {
			continue
		}
		active := join(activeDir, rel)
		ok, err := filesystem.Exists(s.fs, active)
		if err != nil {
			return nil, errors.IO(err, errors.ErrFileAccess, "stat", active)
		}
		if !ok {
			continue
		}
		s.logger.Debug().Str("file", rel).Str("active", active).Msg("Using active overlay version")
		if err := filesystem.CopyFile(s.fs, active, target); err != nil {
			return nil, err
		}
		if err := filesystem.CopyFile(s.fs, active, staged); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int("files", len(files)).Str("staging", stagingDir).Msg("Staged copy-through files")
	return files, nil
}

// Restore copies every staged file matched by copyRules back into targetDir,
// overwriting the exported version. It returns the relative paths restored.
func (s *Stager) Restore(stagingDir, targetDir string, copyRules patterns.Rules) ([]string, error) {
	if copyRules.Empty() {
		return nil, nil
	}
	return s.copyTree(stagingDir, targetDir, copyRules.Match)
}

// CopyBack copies every staged file into targetDir regardless of rules.
func (s *Stager) CopyBack(stagingDir, targetDir string) ([]string, error) {
	return s.copyTree(stagingDir, targetDir, nil)
}

func (s *Stager) copyTree(srcDir, dstDir string, match func(string) bool) ([]string, error) {
	files, err := filesystem.Scan(s.fs, srcDir, match)
	if err != nil {
		return nil, err
	}
	for _, rel := range files {
		if err := filesystem.CopyFile(s.fs, join(srcDir, rel), join(dstDir, rel)); err != nil {
			return nil, err
		}
	}
	return files, nil
}

// Replication is one file seeded into a per-environment directory.
type Replication struct {
	Environment string
	Path        string
}

// Replicate copies every file of targetDir matched by copyRules into each
// environment directory that does not already have it. Existing files are
// never overwritten. Environments are visited in name order.
func (s *Stager) Replicate(targetDir string, envDirs map[string]string, copyRules patterns.Rules) ([]Replication, error) {
	if copyRules.Empty() || len(envDirs) == 0 {
		return nil, nil
	}

	files, err := ManagedFiles(s.fs, targetDir, copyRules.Match)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(envDirs))
	for name := range envDirs {
		names = append(names, name)
	}
	sort.Strings(names)

	var copied []Replication
	for _, name := range names {
		dir := envDirs[name]
		for _, rel := range files {
			dst := join(dir, rel)
			exists, err := filesystem.Exists(s.fs, dst)
			if err != nil {
				return copied, errors.IO(err, errors.ErrFileAccess, "stat", dst)
			}
			if exists {
				continue
			}
			if err := filesystem.CopyFile(s.fs, join(targetDir, rel), dst); err != nil {
				return copied, err
			}
			copied = append(copied, Replication{Environment: name, Path: dst})
		}
	}

	if len(copied) > 0 {
		s.logger.Info().Int("files", len(copied)).Msg("Seeded environment directories")
	}
	return copied, nil
}

// Prune deletes every file of targetDir matched by excludeRules and returns
// the relative paths removed.
func (s *Stager) Prune(targetDir string, excludeRules patterns.Rules) ([]string, error) {
	if excludeRules.Empty() {
		return nil, nil
	}
	files, err := ManagedFiles(s.fs, targetDir, excludeRules.Match)
	if err != nil {
		return nil, err
	}
	for _, rel := range files {
		path := join(targetDir, rel)
		if err := s.fs.Remove(path); err != nil {
			return nil, errors.IO(err, errors.ErrFileDelete, "delete", path)
		}
	}
	return files, nil
}

// Reset empties stagingDir, creating it if needed.
func (s *Stager) Reset(stagingDir string) error {
	if err := s.fs.RemoveAll(stagingDir); err != nil {
		return errors.IO(err, errors.ErrFileDelete, "clear staging", stagingDir)
	}
	return filesystem.EnsureDir(s.fs, stagingDir)
}

// Cleanup removes stagingDir.
func (s *Stager) Cleanup(stagingDir string) error {
	if err := s.fs.RemoveAll(stagingDir); err != nil {
		return errors.IO(err, errors.ErrFileDelete, "remove staging", stagingDir)
	}
	return nil
}

// ManagedFiles lists the relative paths below dir accepted by match, skipping
// anything inside a dot-directory.
func ManagedFiles(fsys filesystem.FS, dir string, match func(string) bool) ([]string, error) {
	return filesystem.Scan(fsys, dir, func(rel string) bool {
		if inDotDir(rel) {
			return false
		}
		return match == nil || match(rel)
	})
}

func inDotDir(rel string) bool {
	parts := strings.Split(rel, "/")
	for _, p := range parts[:len(parts)-1] {
		if strings.HasPrefix(p, ".") {
			return true
		}
	}
	return false
}

func join(dir, rel string) string {
	return filepath.Join(dir, filepath.FromSlash(rel))
}
