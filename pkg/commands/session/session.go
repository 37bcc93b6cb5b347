// Package session holds the setup shared by the export, diff and edit
// commands: the live store, the environment settings and the destination.
package session

import (
	"context"
	"time"

	"github.com/arthur-debert/ezconfig/pkg/config"
	"github.com/arthur-debert/ezconfig/pkg/dirs"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/arthur-debert/ezconfig/pkg/paths"
	"github.com/arthur-debert/ezconfig/pkg/store"
)

// Options configures Open.
type Options struct {
	Config *config.Config
	// FS defaults to the OS filesystem.
	FS filesystem.FS
	// Live replaces the configured live store, mostly for tests.
	Live store.Store
}

// Session is one command's view of the site: the loaded configuration, the
// open live store and the environment settings read from it.
type Session struct {
	Config *config.Config
	FS     filesystem.FS
	Live   store.Store
	Env    config.EnvironmentConfig

	close func() error
}

// Open opens the live store and loads the environment settings. Callers
// must Close the session.
func Open(ctx context.Context, opts Options) (*Session, error) {
	logger := logging.GetLogger("commands.session")
	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "configuration is required")
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	live, closeLive := opts.Live, func() error { return nil }
	if live == nil {
		var err error
		live, closeLive, err = store.OpenLive(ctx, fsys, opts.Config.LiveOptions())
		if err != nil {
			return nil, err
		}
	}

	env, err := config.LoadEnvironment(ctx, live, opts.Config)
	if err != nil {
		_ = closeLive()
		return nil, err
	}
	logger.Debug().
		Str("driver", opts.Config.Live.Driver).
		Strs("copy", env.Copy).
		Strs("exclude_config", env.ExcludeConfig).
		Strs("exclude_modules", env.ExcludeModules).
		Msg("Session opened")

	return &Session{Config: opts.Config, FS: fsys, Live: live, Env: env, close: closeLive}, nil
}

// Close releases the live store.
func (s *Session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Registry lists the per-environment directories of the site.
func (s *Session) Registry() dirs.Registry {
	return s.Config.Registry(s.FS, s.Env)
}

// Destination resolves a destination label, explicit path or fresh backup
// request against the site's configured directories.
func (s *Session) Destination(label, path string, fresh bool, now time.Time) (string, error) {
	return paths.ResolveDestination(s.FS, paths.DestinationRequest{
		Label:       label,
		Path:        path,
		Fresh:       fresh,
		Directories: s.Config.Directories,
		BackupDir:   s.Config.BackupDir,
		Now:         now,
	})
}
