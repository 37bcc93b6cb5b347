// Package diff previews what an export would change, without writing.
package diff

import (
	"context"
	"time"

	"github.com/arthur-debert/ezconfig/pkg/changes"
	"github.com/arthur-debert/ezconfig/pkg/commands/session"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/arthur-debert/ezconfig/pkg/reconcile"
	"github.com/arthur-debert/ezconfig/pkg/store"
)

// DiffOptions holds options for the diff command.
type DiffOptions struct {
	Session *session.Session

	Label       string
	Destination string

	// Details adds a unified diff per changed document.
	Details bool
}

// DiffResult is the previewed change set.
type DiffResult struct {
	Destination string
	Run         *reconcile.Result
	// Details is set when DiffOptions.Details is.
	Details string
}

// Diff computes the change set an export to the destination would apply.
func Diff(ctx context.Context, opts DiffOptions) (*DiffResult, error) {
	logger := logging.GetLogger("commands.diff")
	s := opts.Session
	if s == nil {
		return nil, errors.New(errors.ErrInvalidInput, "a session is required")
	}

	dest, err := s.Destination(opts.Label, opts.Destination, false, time.Time{})
	if err != nil {
		return nil, err
	}

	engine, err := reconcile.New(reconcile.Options{
		FS:       s.FS,
		Live:     s.Live,
		Target:   store.NewFileStore(s.FS, dest),
		Env:      s.Env,
		Staging:  s.Config.Staging,
		Manifest: s.Config.Manifest,
		Registry: s.Registry(),
	})
	if err != nil {
		return nil, err
	}

	run, err := engine.Diff(ctx)
	if err != nil {
		return nil, err
	}
	result := &DiffResult{Destination: dest, Run: run}
	logger.Info().Str("destination", dest).Str("changes", run.Changes.Summary()).Msg("Computed changes")

	if opts.Details && run.Changes.HasChanges() {
		if result.Details, err = changes.RenderDetails(run.Changes); err != nil {
			return result, err
		}
	}
	return result, nil
}
