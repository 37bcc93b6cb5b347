package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/ezconfig/pkg/filesystem"
)

// AssertFileContent checks that path exists and holds exactly expected.
func AssertFileContent(t *testing.T, fsys filesystem.FS, path, expected string) {
	t.Helper()

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Errorf("Expected file %s to exist: %v", path, err)
		return
	}
	if string(data) != expected {
		t.Errorf("Unexpected content in %s\nExpected: %q\nActual:   %q", path, expected, string(data))
	}
}

// AssertNoFile checks that nothing exists at path.
func AssertNoFile(t *testing.T, fsys filesystem.FS, path string) {
	t.Helper()

	exists, err := filesystem.Exists(fsys, path)
	if err != nil {
		t.Errorf("Failed to stat %s: %v", path, err)
		return
	}
	if exists {
		t.Errorf("Expected %s not to exist", path)
	}
}

// AssertDocuments checks that dir holds exactly the given documents, by
// relative file path, ignoring files that are not documents.
func AssertDocuments(t *testing.T, fsys filesystem.FS, dir string, expected map[string]string) {
	t.Helper()

	files, err := filesystem.Scan(fsys, dir, func(rel string) bool {
		return filepath.Ext(rel) == ".yml"
	})
	if err != nil {
		t.Errorf("Failed to scan %s: %v", dir, err)
		return
	}

	seen := make(map[string]bool, len(files))
	for _, rel := range files {
		seen[rel] = true
		want, ok := expected[rel]
		if !ok {
			t.Errorf("Unexpected document %s in %s", rel, dir)
			continue
		}
		AssertFileContent(t, fsys, filepath.Join(dir, filepath.FromSlash(rel)), want)
	}
	for rel := range expected {
		if !seen[rel] {
			t.Errorf("Expected document %s in %s", rel, dir)
		}
	}
}
