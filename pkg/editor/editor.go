// Package editor edits one environment-specific document by hand: a document
// the export leaves alone (listed in environment.ignore) is written straight
// into the active overlay directory or one of the per-environment
// directories.
package editor

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/ezconfig/pkg/dirs"
	"github.com/arthur-debert/ezconfig/pkg/document"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/arthur-debert/ezconfig/pkg/store"
	"github.com/rs/zerolog"
)

// Dir is one directory a document can be written to.
type Dir struct {
	Label string
	Path  string
}

// Draft is a document opened for editing in one directory.
type Draft struct {
	Name string
	Dir  Dir
	Path string

	// Exists is true when Content came from the file at Path rather than
	// from the live store.
	Exists  bool
	Content string
}

// Editor loads and saves single documents.
type Editor struct {
	fs       filesystem.FS
	live     store.Store
	registry dirs.Registry
	active   string
	logger   zerolog.Logger
}

// New creates an editor writing into the active overlay directory or the
// directories of registry, falling back to live for documents not on disk
// yet. active may be empty.
func New(fsys filesystem.FS, live store.Store, registry dirs.Registry, active string) *Editor {
	return &Editor{
		fs:       fsys,
		live:     live,
		registry: registry,
		active:   active,
		logger:   logging.GetLogger("editor"),
	}
}

// Choices returns the editable document names in configured order, without
// duplicates.
func Choices(ignore []string) []string {
	seen := make(map[string]bool, len(ignore))
	var out []string
	for _, name := range ignore {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Dirs lists the target directories, the active overlay first and the rest
// by label.
func (e *Editor) Dirs() ([]Dir, error) {
	all, err := e.registry.Dirs()
	if err != nil {
		return nil, err
	}
	var out []Dir
	if e.active != "" {
		out = append(out, Dir{Label: dirs.ActiveLabel, Path: e.active})
	}
	labels := make([]string, 0, len(all))
	for label := range all {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		out = append(out, Dir{Label: label, Path: all[label]})
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrNotFound, "no configuration directories to edit in")
	}
	return out, nil
}

// Load opens name in dir. The file content is used when it exists,
// otherwise the live encoding, otherwise an empty document.
func (e *Editor) Load(ctx context.Context, name string, dir Dir) (*Draft, error) {
	if name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "document name cannot be empty")
	}
	draft := &Draft{
		Name: name,
		Dir:  dir,
		Path: filepath.Join(dir.Path, document.Filename(name)),
	}

	exists, err := filesystem.Exists(e.fs, draft.Path)
	if err != nil {
		return nil, errors.IO(err, errors.ErrFileAccess, "stat", draft.Path)
	}
	if exists {
		data, err := e.fs.ReadFile(draft.Path)
		if err != nil {
			return nil, errors.IO(err, errors.ErrFileAccess, "read", draft.Path)
		}
		draft.Exists = true
		draft.Content = string(data)
		return draft, nil
	}

	doc, err := e.live.Read(ctx, name)
	switch {
	case errors.IsErrorCode(err, errors.ErrNotFound):
		e.logger.Debug().Str("document", name).Msg("Not in live store, starting empty")
	case err != nil:
		return nil, err
	default:
		draft.Content = string(doc.Data)
	}
	return draft, nil
}

// Save writes content to the draft's path. Content must parse as a document.
func (e *Editor) Save(draft *Draft, content string) error {
	if _, err := document.New(draft.Name, []byte(content)).Node(); err != nil {
		return err
	}
	if err := filesystem.EnsureDir(e.fs, draft.Dir.Path); err != nil {
		return err
	}
	if err := e.fs.WriteFile(draft.Path, []byte(content), 0644); err != nil {
		return errors.IO(err, errors.ErrFileWrite, "write", draft.Path)
	}
	e.logger.Info().Str("document", draft.Name).Str("dir", draft.Dir.Path).Msg("Document saved")
	return nil
}
