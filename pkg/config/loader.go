package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/arthur-debert/ezconfig/pkg/manifest"
	"github.com/arthur-debert/ezconfig/pkg/paths"
	"github.com/arthur-debert/ezconfig/pkg/store"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix starts every configuration environment variable. A double
	// underscore nests: EZCONFIG_LIVE__DSN is live.dsn.
	EnvPrefix = "EZCONFIG_"

	// DotEnvFile is read from the site root before the environment.
	DotEnvFile = ".env"

	// DefaultEnvironmentDocument is the live document holding the
	// environment settings.
	DefaultEnvironmentDocument = "environment_config"
)

// SiteFiles are the site configuration file names, in lookup order. Only
// the first one found is loaded.
var SiteFiles = []string{"ezconfig.toml", "ezconfig.yml", "ezconfig.yaml"}

// Options controls Load.
type Options struct {
	// Root is the site root; see paths.Root.
	Root string
	// Overrides are dotted keys set from the command line, e.g.
	// {"live.driver": "sqlite3"}.
	Overrides map[string]interface{}
}

// Load builds the site configuration from, in increasing priority: the
// embedded defaults, the site file, the .env file, EZCONFIG_* variables and
// opts.Overrides.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")

	root, err := paths.Root(opts.Root)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Site file
	if path := findSiteFile(root); path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load site config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded site configuration")
	}

	// 3. .env, without overriding variables already set
	dotenv := filepath.Join(root, DotEnvFile)
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load %s", dotenv).
				WithDetail("path", dotenv)
		}
		logger.Debug().Str("path", dotenv).Msg("Loaded .env")
	}

	// 4. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	if err := unmarshal(k, "", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcessConfig(&cfg, root); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", cfg.Root).
		Str("live_driver", cfg.Live.Driver).
		Str("sync", cfg.SyncDir()).
		Msg("Configuration loaded")
	return &cfg, nil
}

func unmarshal(k *koanf.Koanf, path string, out interface{}) error {
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHookFunc(),
			),
		},
	}
	return k.UnmarshalWithConf(path, out, conf)
}

// postProcessConfig resolves every path against the root and fills the
// defaults that depend on the machine.
func postProcessConfig(cfg *Config, root string) error {
	cfg.Root = root

	if cfg.Live.Driver == "" {
		cfg.Live.Driver = store.DriverFile
	}
	if cfg.Live.Table == "" {
		cfg.Live.Table = store.DefaultTable
	}
	cfg.Live.Directory = paths.Resolve(root, cfg.Live.Directory)

	for label, dir := range cfg.Directories {
		cfg.Directories[label] = paths.Resolve(root, dir)
	}
	if cfg.SyncDir() == "" {
		return errors.New(errors.ErrConfigLoad, "no sync directory configured").
			WithDetail("key", "directories.sync")
	}

	for name, dir := range cfg.Environments {
		cfg.Environments[name] = paths.Resolve(root, dir)
	}
	cfg.Environment.Config = paths.Resolve(root, cfg.Environment.Config)

	if cfg.Staging == "" {
		cfg.Staging = paths.DefaultStagingDir()
	} else {
		cfg.Staging = paths.Resolve(root, cfg.Staging)
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = paths.DefaultBackupDir()
	} else {
		cfg.BackupDir = paths.Resolve(root, cfg.BackupDir)
	}

	if cfg.EnvironmentDocument == "" {
		cfg.EnvironmentDocument = DefaultEnvironmentDocument
	}
	if cfg.Manifest == "" {
		cfg.Manifest = manifest.DefaultName
	}
	return nil
}

// trimSliceHookFunc drops blanks around list items given as "a, b".
func trimSliceHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return data, nil
		}
		items, ok := data.([]string)
		if !ok {
			return data, nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out, nil
	}
}

func findSiteFile(root string) string {
	for _, name := range SiteFiles {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
