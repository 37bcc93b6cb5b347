package config

import (
	"context"
	"testing"

	"github.com/arthur-debert/ezconfig/pkg/dirs"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/arthur-debert/ezconfig/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteConfig() *Config {
	return &Config{
		Root:                "/site",
		Directories:         map[string]string{"sync": "/site/config/sync"},
		EnvironmentDocument: "environment_config",
		Environment: EnvironmentConfig{
			Copy:   []string{"x.*"},
			Ignore: []string{"system.site"},
			Config: "/site/config/local",
		},
	}
}

func TestLoadEnvironmentWithoutDocument(t *testing.T) {
	cfg := siteConfig()

	env, err := LoadEnvironment(context.Background(), store.NewMemoryStore(), cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Environment, env)
}

func TestLoadEnvironmentDocumentWins(t *testing.T) {
	live := store.NewMemoryStore().Put("", "environment_config", `copy:
  - c.*
exclude_modules:
  - node
config: config/active
`)

	env, err := LoadEnvironment(context.Background(), live, siteConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"c.*"}, env.Copy)
	assert.Equal(t, []string{"node"}, env.ExcludeModules)
	assert.Equal(t, "/site/config/active", env.Config)
	assert.Equal(t, []string{"system.site"}, env.Ignore, "keys absent from the document keep the site value")
}

func TestLoadEnvironmentMalformedDocument(t *testing.T) {
	live := store.NewMemoryStore().Put("", "environment_config", "copy: [unclosed\n")

	_, err := LoadEnvironment(context.Background(), live, siteConfig())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestEnvironmentRules(t *testing.T) {
	env := EnvironmentConfig{
		Copy:           []string{"c.*"},
		ExcludeConfig:  []string{"devel.settings"},
		ExcludeModules: []string{"node"},
	}

	assert.True(t, env.CopyRules().Match("c.settings.yml"))
	assert.False(t, env.CopyRules().Match("system.site.yml"))

	excludes := env.ExcludeRules()
	assert.Len(t, excludes, 2)
	assert.True(t, excludes.Match("devel.settings.yml"))
	assert.True(t, excludes.Match("node.type.page.yml"))
	assert.False(t, excludes.Match("system.site.yml"))
}

func TestRegistry(t *testing.T) {
	fsys := filesystem.NewMemory()
	env := EnvironmentConfig{Config: "/site/config/active"}

	t.Run("siblings when no environments are configured", func(t *testing.T) {
		cfg := siteConfig()
		reg := cfg.Registry(fsys, env)
		sib, ok := reg.(dirs.SiblingRegistry)
		require.True(t, ok)
		assert.Equal(t, "/site/config/sync", sib.SyncDir)
		assert.Equal(t, "/site/config/active", sib.ActiveDir)
	})

	t.Run("static environments", func(t *testing.T) {
		cfg := siteConfig()
		cfg.Environments = map[string]string{"prod": "/srv/prod", "local": "/site/config/active/"}
		got, err := cfg.Registry(fsys, env).Dirs()
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"prod": "/srv/prod"}, got)
	})
}

func TestLiveOptions(t *testing.T) {
	cfg := &Config{Live: LiveConfig{Driver: "sqlite3", DSN: "site.db", Table: "config", Directory: "/site/live"}}
	assert.Equal(t, store.LiveOptions{Driver: "sqlite3", DSN: "site.db", Table: "config", Directory: "/site/live"}, cfg.LiveOptions())
}
