// Package config handles configuration management for ezconfig.
// It layers embedded defaults, the site's ezconfig.toml (or .yml), a .env
// file, EZCONFIG_* environment variables and command-line overrides.
package config
