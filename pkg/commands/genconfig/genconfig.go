package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/ezconfig/pkg/config"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/arthur-debert/ezconfig/pkg/logging"
)

// FileName is the site configuration file written by GenConfig.
const FileName = "ezconfig.toml"

// GenConfigOptions holds options for the gen-config command
type GenConfigOptions struct {
	// Root is the site root the file is written to.
	Root  string
	Write bool
	// Resolved, when set, is printed instead of the commented defaults.
	Resolved   *config.Config
	FileSystem filesystem.FS
}

// GenConfigResult holds the generated content and the files written
type GenConfigResult struct {
	ConfigContent string
	FilesWritten  []string
}

// GenConfig outputs or writes the default configuration
func GenConfig(opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GenerateConfigContent()
	if opts.Resolved != nil {
		data, err := config.Marshal(opts.Resolved)
		if err != nil {
			return nil, err
		}
		content = string(data)
	}

	result := &GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	targetPath := filepath.Join(opts.Root, FileName)

	if err := filesystem.EnsureDir(fsys, opts.Root); err != nil {
		return result, err
	}
	exists, err := filesystem.Exists(fsys, targetPath)
	if err != nil {
		return result, errors.IO(err, errors.ErrFileAccess, "stat", targetPath)
	}
	if exists {
		logger.Warn().Str("path", targetPath).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := fsys.WriteFile(targetPath, []byte(content), 0644); err != nil {
		return result, errors.IO(err, errors.ErrFileWrite, "write", targetPath)
	}
	logger.Info().Str("path", targetPath).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, targetPath)
	return result, nil
}
