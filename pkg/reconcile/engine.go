// Package reconcile exports the live configuration into a target directory.
//
// A run is a fixed sequence of states:
//
//	Idle -> Staged -> Diffed -> AwaitingConfirmation -> Clearing -> Writing ->
//	PostProcessing -> Replicating -> Restoring -> Pruning -> Done
//
// A declined confirmation ends in Aborted, any failure in Errored. An empty
// target skips Diffed and AwaitingConfirmation; a target that already
// matches skips AwaitingConfirmation and Clearing. Nothing but the staging
// area is written before the confirmation.
package reconcile

import (
	"context"
	"fmt"
	"io"

	"github.com/arthur-debert/ezconfig/pkg/changes"
	"github.com/arthur-debert/ezconfig/pkg/config"
	"github.com/arthur-debert/ezconfig/pkg/dirs"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/arthur-debert/ezconfig/pkg/manifest"
	"github.com/arthur-debert/ezconfig/pkg/overlay"
	"github.com/arthur-debert/ezconfig/pkg/patterns"
	"github.com/arthur-debert/ezconfig/pkg/store"
	"github.com/arthur-debert/ezconfig/pkg/style"
	"github.com/arthur-debert/ezconfig/pkg/ui/confirmations"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NoBaseline is the preview of a run whose target held no documents.
const NoBaseline = "No existing configuration to diff against."

// Options wires an Engine. Registry and Lock are optional, and Confirmer is
// only needed by Run; the rest is required.
type Options struct {
	FS     filesystem.FS
	Live   store.Store
	Target *store.FileStore
	Env    config.EnvironmentConfig

	// Staging is the staging directory for copy-through files.
	Staging string
	// Manifest is the module manifest document; defaults to core.extension.
	Manifest string

	// Registry lists the per-environment directories to replicate into.
	Registry  dirs.Registry
	Confirmer confirmations.Confirmer
	Out       io.Writer
	Lock      overlay.Locker
}

// Result describes a finished run, successful or not.
type Result struct {
	RunID       string
	Destination string

	// State is the state the run ended in; FailedIn is the state that was
	// being carried out when it entered Errored.
	State    State
	FailedIn State
	Trace    []State

	Changes *changes.ChangeSet
	// Preview is the colorless change table, or NoBaseline.
	Preview string

	Staged         []string
	Written        int
	RemovedModules []string
	Replicated     []overlay.Replication
	Restored       []string
	Pruned         []string
}

// Engine runs exports for one target.
type Engine struct {
	opts         Options
	stager       *overlay.Stager
	copyRules    patterns.Rules
	excludeRules patterns.Rules
	logger       zerolog.Logger
}

// New validates opts and creates an engine.
func New(opts Options) (*Engine, error) {
	switch {
	case opts.FS == nil:
		return nil, errors.New(errors.ErrInvalidInput, "a filesystem is required")
	case opts.Live == nil:
		return nil, errors.New(errors.ErrInvalidInput, "a live store is required")
	case opts.Target == nil:
		return nil, errors.New(errors.ErrInvalidInput, "a target store is required")
	}

	copyRules := opts.Env.CopyRules()
	if !copyRules.Empty() && opts.Staging == "" {
		return nil, errors.New(errors.ErrInvalidInput, "copy-through rules need a staging directory")
	}
	if opts.Manifest == "" {
		opts.Manifest = manifest.DefaultName
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	logger := logging.GetLogger("reconcile")
	return &Engine{
		opts:         opts,
		stager:       overlay.NewStager(opts.FS).WithLogger(logger),
		copyRules:    copyRules,
		excludeRules: opts.Env.ExcludeRules(),
		logger:       logger,
	}, nil
}

// Run performs one export. A declined confirmation returns an ErrUserAbort
// error with the result in Aborted.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), Destination: e.opts.Target.Root()}
	logger := e.logger.With().Str("run_id", res.RunID).Str("destination", res.Destination).Logger()
	e.enter(logger, res, Idle)

	done := logging.LogOperationStart(logger, "export")
	defer done()

	if e.opts.Lock != nil {
		release, err := e.opts.Lock.Acquire()
		if err != nil {
			return e.fail(logger, res, err)
		}
		defer func() {
			if err := release(); err != nil {
				logger.Warn().Err(err).Msg("Failed to release export lock")
			}
		}()
	}

	if err := e.run(ctx, logger, res); err != nil {
		return e.fail(logger, res, err)
	}
	return res, nil
}

func (e *Engine) run(ctx context.Context, logger zerolog.Logger, res *Result) error {
	target := e.opts.Target
	dir := target.Root()

	if err := e.stage(res); err != nil {
		return err
	}
	e.enter(logger, res, Staged)

	clear, err := e.diff(ctx, logger, res)
	if err != nil {
		return err
	}

	if clear {
		e.enter(logger, res, Clearing)
		// Only documents go; VCS metadata and other files stay.
		if err := store.DeleteEverything(ctx, target); err != nil {
			return err
		}
	}

	e.enter(logger, res, Writing)
	if err := filesystem.EnsureDir(e.opts.FS, dir); err != nil {
		return err
	}
	written, err := store.CopyAll(ctx, e.opts.Live, target)
	res.Written = written
	if err != nil {
		return err
	}
	logger.Info().Int("documents", written).Msg("Wrote live configuration")

	e.enter(logger, res, PostProcessing)
	if res.RemovedModules, err = e.stripManifest(ctx); err != nil {
		return err
	}

	e.enter(logger, res, Replicating)
	if err := e.replicate(res); err != nil {
		return err
	}

	e.enter(logger, res, Restoring)
	if res.Restored, err = e.stager.Restore(e.opts.Staging, dir, e.copyRules); err != nil {
		return err
	}

	e.enter(logger, res, Pruning)
	if res.Pruned, err = e.stager.Prune(dir, e.excludeRules); err != nil {
		return err
	}

	if !e.copyRules.Empty() {
		if err := e.stager.Cleanup(e.opts.Staging); err != nil {
			logger.Warn().Err(err).Str("staging", e.opts.Staging).Msg("Failed to remove staging directory")
		}
	}

	e.enter(logger, res, Done)
	style.PrintStatus(e.opts.Out, style.StatusSuccess, "Configuration successfully exported to %s.", dir)
	return nil
}

// stage shields the copy-through files of the target. Without copy-through
// rules it does nothing.
func (e *Engine) stage(res *Result) error {
	if e.copyRules.Empty() {
		return nil
	}
	if err := e.stager.Reset(e.opts.Staging); err != nil {
		return err
	}
	staged, err := e.stager.Stage(e.opts.Target.Root(), e.opts.Staging, e.copyRules, e.opts.Env.Config)
	res.Staged = staged
	return err
}

// diff computes the change set and asks for confirmation. It reports
// whether the target must be cleared before writing.
func (e *Engine) diff(ctx context.Context, logger zerolog.Logger, res *Result) (bool, error) {
	dir := e.opts.Target.Root()

	hasBaseline, err := store.HasDocuments(ctx, e.opts.Target)
	if err != nil {
		return false, err
	}
	if !hasBaseline {
		res.Changes = &changes.ChangeSet{}
		res.Preview = NoBaseline
		logger.Info().Msg("Target is empty, nothing to diff")
		return true, nil
	}

	cs, err := e.compute(ctx)
	if err != nil {
		return false, err
	}
	res.Changes = cs
	res.Preview = changes.RenderPlain(cs)
	e.enter(logger, res, Diffed)

	if !cs.HasChanges() {
		logger.Info().Msg("Active configuration is identical to the export directory")
		style.PrintStatus(e.opts.Out, style.StatusInfo,
			"The active configuration is identical to the configuration in the export directory (%s).", dir)
		return false, nil
	}

	e.enter(logger, res, AwaitingConfirmation)
	if e.opts.Confirmer == nil {
		return false, errors.New(errors.ErrInvalidInput, "changes need confirmation but no confirmer is set")
	}
	logger.Info().Str("changes", cs.Summary()).Msg("Awaiting confirmation")
	_, _ = fmt.Fprintf(e.opts.Out, "Differences of the active config to the export directory:\n\n%s\n\n", changes.Render(cs))

	ok, err := e.opts.Confirmer.Confirm(fmt.Sprintf(
		"The .yml files in your export directory (%s) will be deleted and replaced with the active config. Continue?", dir))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, errors.New(errors.ErrUserAbort, "export cancelled").WithDetail("destination", dir)
	}
	return true, nil
}

// compute diffs the planned export against the target as staged.
func (e *Engine) compute(ctx context.Context) (*changes.ChangeSet, error) {
	plan, err := e.plan(ctx)
	if err != nil {
		return nil, err
	}
	return changes.Compute(ctx, plan, e.opts.Target)
}

// stripManifest drops the excluded modules from the written manifest.
func (e *Engine) stripManifest(ctx context.Context) ([]string, error) {
	modules := e.opts.Env.ExcludeModules
	if len(modules) == 0 {
		return nil, nil
	}

	doc, err := e.opts.Target.Read(ctx, e.opts.Manifest)
	if errors.IsErrorCode(err, errors.ErrNotFound) {
		return nil, errors.Newf(errors.ErrManifestFormat, "module manifest %s is missing", e.opts.Manifest).
			WithDetail("document", e.opts.Manifest)
	}
	if err != nil {
		return nil, err
	}

	stripped, removed, err := manifest.Strip(doc, modules)
	if err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, nil
	}
	if err := e.opts.Target.Write(ctx, stripped); err != nil {
		return nil, err
	}
	e.logger.Info().Strs("modules", removed).Msg("Removed excluded modules from manifest")
	return removed, nil
}

// replicate seeds the environment directories with copy-through files, then
// copies the whole staging area back over the target.
func (e *Engine) replicate(res *Result) error {
	if e.copyRules.Empty() {
		return nil
	}
	dir := e.opts.Target.Root()

	if e.opts.Registry != nil {
		// The active overlay is only ever read, by staging.
		envDirs, err := dirs.Without(e.opts.Registry, dir, e.opts.Env.Config)
		if err != nil {
			return err
		}
		if res.Replicated, err = e.stager.Replicate(dir, envDirs, e.copyRules); err != nil {
			return err
		}
	}

	_, err := e.stager.CopyBack(e.opts.Staging, dir)
	return err
}

func (e *Engine) enter(logger zerolog.Logger, res *Result, s State) {
	res.State = s
	res.Trace = append(res.Trace, s)
	logger.Debug().Stringer("state", s).Msg("Export state")
}

func (e *Engine) fail(logger zerolog.Logger, res *Result, err error) (*Result, error) {
	if errors.IsErrorCode(err, errors.ErrUserAbort) {
		e.enter(logger, res, Aborted)
		logger.Info().Msg("Export aborted")
		return res, err
	}
	res.FailedIn = res.State
	e.enter(logger, res, Errored)
	logger.Error().Err(err).Stringer("failed_in", res.FailedIn).Msg("Export failed")
	return res, err
}
