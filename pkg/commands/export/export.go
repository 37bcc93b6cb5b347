// Package export writes the live configuration to a destination directory
// and optionally records the result in git.
package export

import (
	"context"
	"io"
	"time"

	"github.com/arthur-debert/ezconfig/pkg/commands/session"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/arthur-debert/ezconfig/pkg/overlay"
	"github.com/arthur-debert/ezconfig/pkg/paths"
	"github.com/arthur-debert/ezconfig/pkg/reconcile"
	"github.com/arthur-debert/ezconfig/pkg/store"
	"github.com/arthur-debert/ezconfig/pkg/ui/confirmations"
	"github.com/arthur-debert/ezconfig/pkg/vcs"
)

// Committer records an exported directory in version control.
type Committer interface {
	Commit(ctx context.Context, dir, message string) (bool, error)
	AddInteractive(ctx context.Context, dir string) error
}

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Session *session.Session

	// Label names one of the configured directories; Destination is an
	// explicit path and Fresh asks for a new backup directory.
	Label       string
	Destination string
	Fresh       bool

	Confirmer confirmations.Confirmer
	Out       io.Writer
	// Lock guards the staging area; nil runs unlocked.
	Lock overlay.Locker

	// Commit commits the result; Add stages it interactively. Commit wins
	// when both are set.
	Add     bool
	Commit  bool
	Message string
	VCS     Committer

	Now time.Time
}

// ExportResult describes a finished export.
type ExportResult struct {
	Destination string
	Run         *reconcile.Result
	Committed   bool
}

// Export validates the destination, runs the export and, when asked, hands
// the destination to git. An export the operator declined returns a
// USER_ABORT error.
func Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	logger := logging.GetLogger("commands.export")
	s := opts.Session
	if s == nil {
		return nil, errors.New(errors.ErrInvalidInput, "a session is required")
	}

	dest, err := s.Destination(opts.Label, opts.Destination, opts.Fresh, opts.Now)
	if err != nil {
		return nil, err
	}
	if err := paths.ValidateDestination(s.FS, dest); err != nil {
		return nil, err
	}
	result := &ExportResult{Destination: dest}
	logger.Info().Str("destination", dest).Msg("Exporting configuration")

	engine, err := reconcile.New(reconcile.Options{
		FS:        s.FS,
		Live:      s.Live,
		Target:    store.NewFileStore(s.FS, dest),
		Env:       s.Env,
		Staging:   s.Config.Staging,
		Manifest:  s.Config.Manifest,
		Registry:  s.Registry(),
		Confirmer: opts.Confirmer,
		Out:       opts.Out,
		Lock:      opts.Lock,
	})
	if err != nil {
		return nil, err
	}

	result.Run, err = engine.Run(ctx)
	if err != nil {
		return result, err
	}

	if !opts.Add && !opts.Commit {
		return result, nil
	}
	committer := opts.VCS
	if committer == nil {
		committer = vcs.NewGit(nil)
	}
	if opts.Commit {
		result.Committed, err = committer.Commit(ctx, dest, vcs.CommitMessage(opts.Message, result.Run.Preview))
		return result, err
	}
	return result, committer.AddInteractive(ctx, dest)
}
