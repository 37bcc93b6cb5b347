package config

import (
	"path/filepath"

	"github.com/arthur-debert/ezconfig/pkg/dirs"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/arthur-debert/ezconfig/pkg/patterns"
	"github.com/arthur-debert/ezconfig/pkg/store"
)

// SyncLabel is the directory label every site must define.
const SyncLabel = "sync"

// Config is the resolved configuration of one site. All paths are absolute
// after Load.
type Config struct {
	Root                string            `koanf:"root" toml:"root"`
	Live                LiveConfig        `koanf:"live" toml:"live"`
	Directories         map[string]string `koanf:"directories" toml:"directories"`
	Staging             string            `koanf:"staging" toml:"staging"`
	EnvironmentDocument string            `koanf:"environment_document" toml:"environment_document"`
	Environment         EnvironmentConfig `koanf:"environment" toml:"environment"`
	Environments        map[string]string `koanf:"environments" toml:"environments"`
	Manifest            string            `koanf:"manifest" toml:"manifest"`
	BackupDir           string            `koanf:"backup_dir" toml:"backup_dir"`
}

// LiveConfig selects the live store backend.
type LiveConfig struct {
	Driver    string `koanf:"driver" toml:"driver"`
	DSN       string `koanf:"dsn" toml:"dsn"`
	Table     string `koanf:"table" toml:"table"`
	Directory string `koanf:"directory" toml:"directory"`
}

// EnvironmentConfig holds the overlay rules of one environment. It is loaded
// once per run and not modified afterwards.
type EnvironmentConfig struct {
	Copy           []string `koanf:"copy" toml:"copy" yaml:"copy"`
	ExcludeConfig  []string `koanf:"exclude_config" toml:"exclude_config" yaml:"exclude_config"`
	ExcludeModules []string `koanf:"exclude_modules" toml:"exclude_modules" yaml:"exclude_modules"`
	Config         string   `koanf:"config" toml:"config" yaml:"config"`
	Ignore         []string `koanf:"ignore" toml:"ignore" yaml:"ignore"`
}

// CopyRules compiles the copy-through patterns.
func (e EnvironmentConfig) CopyRules() patterns.Rules {
	return patterns.Compile(e.Copy)
}

// ExcludeRules compiles the name excludes followed by the module excludes.
func (e EnvironmentConfig) ExcludeRules() patterns.Rules {
	rules := patterns.Compile(e.ExcludeConfig)
	return append(rules, patterns.CompileModuleExcludes(e.ExcludeModules)...)
}

// SyncDir is the default export destination.
func (c *Config) SyncDir() string {
	return c.Directories[SyncLabel]
}

// LiveOptions describes the live store for store.OpenLive.
func (c *Config) LiveOptions() store.LiveOptions {
	return store.LiveOptions{
		Driver:    c.Live.Driver,
		DSN:       c.Live.DSN,
		Table:     c.Live.Table,
		Directory: c.Live.Directory,
	}
}

// Registry returns the per-environment directory registry: the configured
// environments when there are any, otherwise the siblings of the sync
// directory. The active overlay directory of env is never part of it.
func (c *Config) Registry(fsys filesystem.FS, env EnvironmentConfig) dirs.Registry {
	if len(c.Environments) == 0 {
		return dirs.SiblingRegistry{FS: fsys, SyncDir: c.SyncDir(), ActiveDir: env.Config}
	}
	static := make(dirs.StaticRegistry, len(c.Environments))
	for name, path := range c.Environments {
		if env.Config != "" && filepath.Clean(path) == filepath.Clean(env.Config) {
			continue
		}
		static[name] = path
	}
	return static
}
