// Package commands provides high-level command implementations for ezconfig.
//
// This package contains the command orchestration layer that sits between
// the CLI and the export engine. Each command lives in its own subdirectory:
//   - export/    - Export command
//   - diff/      - Diff command
//   - edit/      - Edit command
//   - genconfig/ - GenConfig command
//   - session/   - shared live store and environment setup
//
// This file re-exports the command functions so callers need one import.
package commands

import (
	"context"

	"github.com/arthur-debert/ezconfig/pkg/commands/diff"
	"github.com/arthur-debert/ezconfig/pkg/commands/edit"
	"github.com/arthur-debert/ezconfig/pkg/commands/export"
	"github.com/arthur-debert/ezconfig/pkg/commands/genconfig"
	"github.com/arthur-debert/ezconfig/pkg/commands/session"
)

// Session is the shared command setup; see session.Open.
type Session = session.Session

// SessionOptions configures OpenSession.
type SessionOptions = session.Options

// OpenSession opens the live store and loads the environment settings.
func OpenSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	return session.Open(ctx, opts)
}

// Export writes the live configuration to a destination directory.
type ExportOptions = export.ExportOptions

func Export(ctx context.Context, opts ExportOptions) (*export.ExportResult, error) {
	return export.Export(ctx, opts)
}

// Diff previews the changes an export would make.
type DiffOptions = diff.DiffOptions

func Diff(ctx context.Context, opts DiffOptions) (*diff.DiffResult, error) {
	return diff.Diff(ctx, opts)
}

// Edit hand-edits one environment-specific document.
type EditOptions = edit.EditOptions

func Edit(ctx context.Context, opts EditOptions) (*edit.EditResult, error) {
	return edit.Edit(ctx, opts)
}

// GenConfig outputs or writes the site configuration file.
type GenConfigOptions = genconfig.GenConfigOptions

// ConfigFileName is the file GenConfig writes in the site root.
const ConfigFileName = genconfig.FileName

func GenConfig(opts GenConfigOptions) (*genconfig.GenConfigResult, error) {
	return genconfig.GenConfig(opts)
}
