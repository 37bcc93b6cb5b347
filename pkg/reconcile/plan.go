package reconcile

import (
	"context"

	"github.com/arthur-debert/ezconfig/pkg/changes"
	"github.com/arthur-debert/ezconfig/pkg/document"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/arthur-debert/ezconfig/pkg/manifest"
	"github.com/arthur-debert/ezconfig/pkg/store"
)

// plan returns the documents an export leaves in the target: live, with the
// staged copy-through documents on top, excluded documents dropped and
// excluded modules stripped from the manifest. Diffing the plan instead of
// live keeps overlay rules out of the change set.
func (e *Engine) plan(ctx context.Context) (store.Store, error) {
	plan := store.NewMemoryStore()
	if _, err := store.CopyAll(ctx, e.opts.Live, plan); err != nil {
		return nil, err
	}

	if !e.copyRules.Empty() {
		staged := store.NewFileStore(e.opts.FS, e.opts.Staging)
		if _, err := store.CopyAll(ctx, staged, plan); err != nil {
			return nil, err
		}
	}

	if !e.excludeRules.Empty() {
		collections, err := store.AllCollections(ctx, plan)
		if err != nil {
			return nil, err
		}
		for _, c := range collections {
			view := plan.WithCollection(c)
			names, err := view.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			for _, name := range names {
				if !e.excludeRules.Match(document.Filename(name)) {
					continue
				}
				if err := view.Delete(ctx, name); err != nil {
					return nil, err
				}
			}
		}
	}

	if modules := e.opts.Env.ExcludeModules; len(modules) > 0 {
		// A missing or broken manifest fails later, in PostProcessing.
		if doc, err := plan.Read(ctx, e.opts.Manifest); err == nil {
			if stripped, removed, err := manifest.Strip(doc, modules); err == nil && len(removed) > 0 {
				if err := plan.Write(ctx, stripped); err != nil {
					return nil, err
				}
			}
		}
	}
	return plan, nil
}

// Diff computes what Run would change without touching the disk: staging
// and the active overlay are applied on an in-memory copy of the
// filesystem. The result ends in Diffed, or in Staged for an empty target.
func (e *Engine) Diff(ctx context.Context) (*Result, error) {
	scratch, err := filesystem.NewScratch(e.opts.FS)
	if err != nil {
		return nil, err
	}

	opts := e.opts
	opts.FS = scratch
	opts.Target = store.NewFileStore(scratch, e.opts.Target.Root())
	opts.Lock = nil
	if opts.Staging != "" {
		// Files that exist only on disk cannot be removed through scratch.
		opts.Staging += ".preview"
	}
	shadow, err := New(opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Destination: e.opts.Target.Root()}
	shadow.enter(shadow.logger, res, Idle)
	if err := shadow.stage(res); err != nil {
		return shadow.fail(shadow.logger, res, err)
	}
	shadow.enter(shadow.logger, res, Staged)

	has, err := store.HasDocuments(ctx, opts.Target)
	if err != nil {
		return shadow.fail(shadow.logger, res, err)
	}
	if !has {
		res.Changes = &changes.ChangeSet{}
		res.Preview = NoBaseline
		return res, nil
	}

	cs, err := shadow.compute(ctx)
	if err != nil {
		return shadow.fail(shadow.logger, res, err)
	}
	res.Changes = cs
	res.Preview = changes.RenderPlain(cs)
	shadow.enter(shadow.logger, res, Diffed)
	return res, nil
}
