package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/ezconfig/pkg/commands/session"
	"github.com/arthur-debert/ezconfig/pkg/config"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/arthur-debert/ezconfig/pkg/store"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a site laid out the way ezconfig expects it:
//
//	<root>/config/sync    the default export destination
//	<root>/config/active  the active overlay directory
//	<cache>/staging       the staging area
//	<data>/backups        fresh backup directories
type TestEnvironment struct {
	Root      string
	SyncDir   string
	ActiveDir string
	Staging   string
	BackupDir string

	FS     filesystem.FS
	Live   *store.MemoryStore
	Config *config.Config

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment with an empty live
// store and no environment rules.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType, Live: store.NewMemoryStore()}

	base := "/virtual"
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		base = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	env.Root = filepath.Join(base, "site")
	env.SyncDir = filepath.Join(env.Root, "config", "sync")
	env.ActiveDir = filepath.Join(env.Root, "config", "active")
	env.Staging = filepath.Join(base, "cache", "ezconfig", "staging")
	env.BackupDir = filepath.Join(base, "data", "ezconfig", "backups")

	for _, dir := range []string{env.SyncDir, env.BackupDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	env.Config = &config.Config{
		Root:                env.Root,
		Live:                config.LiveConfig{Driver: store.DriverFile, Table: store.DefaultTable},
		Directories:         map[string]string{config.SyncLabel: env.SyncDir},
		Staging:             env.Staging,
		EnvironmentDocument: config.DefaultEnvironmentDocument,
		Manifest:            "core.extension",
		BackupDir:           env.BackupDir,
	}

	return env
}

// WithEnvironment sets the environment rules of the site configuration. The
// active overlay directory defaults to ActiveDir.
func (env *TestEnvironment) WithEnvironment(e config.EnvironmentConfig) *TestEnvironment {
	if e.Config == "" {
		e.Config = env.ActiveDir
	}
	env.Config.Environment = e
	return env
}

// Session opens a command session on the environment's live store.
func (env *TestEnvironment) Session() *session.Session {
	env.t.Helper()
	s, err := session.Open(context.Background(), session.Options{
		Config: env.Config,
		FS:     env.FS,
		Live:   env.Live,
	})
	if err != nil {
		env.t.Fatalf("Failed to open session: %v", err)
	}
	env.t.Cleanup(func() { _ = s.Close() })
	return s
}

// Path joins a site-relative path onto Root; absolute paths are kept.
func (env *TestEnvironment) Path(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(env.Root, path)
}

// WriteFile writes content, creating parent directories.
func (env *TestEnvironment) WriteFile(path, content string) {
	env.t.Helper()
	path = env.Path(path)
	if err := filesystem.EnsureDir(env.FS, filepath.Dir(path)); err != nil {
		env.t.Fatalf("Failed to create parent of %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// WriteFiles writes every path → content pair.
func (env *TestEnvironment) WriteFiles(files map[string]string) {
	env.t.Helper()
	for path, content := range files {
		env.WriteFile(path, content)
	}
}

// ReadFile returns the content of a file, failing the test if it is missing.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(env.Path(path))
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Snapshot maps every file below dir, by slash-separated relative path, to
// its content. A missing dir is an empty snapshot.
func (env *TestEnvironment) Snapshot(dir string) map[string]string {
	env.t.Helper()
	dir = env.Path(dir)
	files, err := filesystem.Scan(env.FS, dir, nil)
	if err != nil {
		env.t.Fatalf("Failed to scan %s: %v", dir, err)
	}
	out := make(map[string]string, len(files))
	for _, rel := range files {
		out[rel] = env.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	}
	return out
}
