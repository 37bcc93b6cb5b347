package genconfig

import (
	"strings"
	"testing"

	"github.com/arthur-debert/ezconfig/pkg/config"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenConfig(t *testing.T) {
	t.Run("output to stdout", func(t *testing.T) {
		fsys := filesystem.NewMemory()

		result, err := GenConfig(GenConfigOptions{Root: "/site", FileSystem: fsys})
		require.NoError(t, err)
		assert.Empty(t, result.FilesWritten)
		assert.Contains(t, result.ConfigContent, "[live]")
		assert.Contains(t, result.ConfigContent, "[directories]")
		assert.Contains(t, result.ConfigContent, "# driver = \"file\"")

		for _, line := range strings.Split(result.ConfigContent, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
				(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
				continue
			}
			assert.Fail(t, "Found uncommented configuration line", "Line: %s", line)
		}

		ok, err := filesystem.Exists(fsys, "/site/"+FileName)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("write to site root", func(t *testing.T) {
		fsys := filesystem.NewMemory()

		result, err := GenConfig(GenConfigOptions{Root: "/site", Write: true, FileSystem: fsys})
		require.NoError(t, err)
		assert.Equal(t, []string{"/site/" + FileName}, result.FilesWritten)

		content, err := fsys.ReadFile("/site/" + FileName)
		require.NoError(t, err)
		assert.Equal(t, result.ConfigContent, string(content))
	})

	t.Run("skip existing config file", func(t *testing.T) {
		fsys := filesystem.NewMemory()
		require.NoError(t, fsys.MkdirAll("/site", 0755))
		require.NoError(t, fsys.WriteFile("/site/"+FileName, []byte("# existing config"), 0644))

		result, err := GenConfig(GenConfigOptions{Root: "/site", Write: true, FileSystem: fsys})
		require.NoError(t, err)
		assert.Empty(t, result.FilesWritten)

		content, err := fsys.ReadFile("/site/" + FileName)
		require.NoError(t, err)
		assert.Equal(t, "# existing config", string(content))
	})

	t.Run("resolved configuration", func(t *testing.T) {
		cfg := &config.Config{
			Live:        config.LiveConfig{Driver: "sqlite3", DSN: "/site/live.db", Table: "config"},
			Directories: map[string]string{"sync": "/site/config/sync"},
		}

		result, err := GenConfig(GenConfigOptions{Resolved: cfg})
		require.NoError(t, err)
		assert.Contains(t, result.ConfigContent, "sqlite3")
		assert.Contains(t, result.ConfigContent, "/site/config/sync")
		assert.NotContains(t, result.ConfigContent, "# driver")
	})
}
