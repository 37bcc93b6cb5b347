package config

import (
	"context"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/logging"
	"github.com/arthur-debert/ezconfig/pkg/paths"
	"github.com/arthur-debert/ezconfig/pkg/store"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// LoadEnvironment returns the environment settings for this run: the live
// document cfg.EnvironmentDocument layered over the [environment] table.
// Keys present in the document replace the table's values whole; lists are
// not merged. Without the document the table is returned as is.
func LoadEnvironment(ctx context.Context, live store.Store, cfg *Config) (EnvironmentConfig, error) {
	logger := logging.GetLogger("config")

	doc, err := live.Read(ctx, cfg.EnvironmentDocument)
	if errors.IsErrorCode(err, errors.ErrNotFound) {
		logger.Debug().Str("document", cfg.EnvironmentDocument).Msg("No environment document, using site file")
		return cfg.Environment, nil
	}
	if err != nil {
		return EnvironmentConfig{}, err
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(environmentMap(cfg.Environment), "."), nil); err != nil {
		return EnvironmentConfig{}, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment defaults")
	}
	if err := k.Load(&rawBytesProvider{bytes: doc.Data}, yaml.Parser()); err != nil {
		return EnvironmentConfig{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", doc.Filename()).
			WithDetail("document", doc.Name)
	}

	var env EnvironmentConfig
	if err := unmarshal(k, "", &env); err != nil {
		return EnvironmentConfig{}, errors.Wrapf(err, errors.ErrConfigParse, "invalid environment document %s", doc.Name).
			WithDetail("document", doc.Name)
	}
	env.Config = paths.Resolve(cfg.Root, env.Config)

	logger.Debug().
		Str("document", doc.Name).
		Strs("copy", env.Copy).
		Strs("exclude_config", env.ExcludeConfig).
		Strs("exclude_modules", env.ExcludeModules).
		Str("config", env.Config).
		Msg("Environment loaded")
	return env, nil
}

func environmentMap(e EnvironmentConfig) map[string]interface{} {
	return map[string]interface{}{
		"copy":            e.Copy,
		"exclude_config":  e.ExcludeConfig,
		"exclude_modules": e.ExcludeModules,
		"config":          e.Config,
		"ignore":          e.Ignore,
	}
}
