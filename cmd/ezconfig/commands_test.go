package ezconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSite creates a site on disk with a file-backed live store and points
// the XDG directories into the test's temp dir.
func setupSite(t *testing.T, live map[string]string) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	t.Setenv("EZCONFIG_ROOT", "")

	root := filepath.Join(base, "site")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config", "live"), 0755))
	for name, content := range live {
		require.NoError(t, os.WriteFile(filepath.Join(root, "config", "live", name), []byte(content), 0644))
	}
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"export", "diff", "edit", "gen-config", "version", "completion"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	export, _, err := root.Find([]string{"cex"})
	require.NoError(t, err)
	assert.Equal(t, "export", export.Name())
	export, _, err = root.Find([]string{"config-export"})
	require.NoError(t, err)
	assert.Equal(t, "export", export.Name())

	dest := export.Flags().Lookup("destination")
	require.NotNil(t, dest)
	assert.Equal(t, freshDestination, dest.NoOptDefVal)
}

func TestNoSubcommand(t *testing.T) {
	_, err := execute(t)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ezconfig version dev")
}

func TestParseOverrides(t *testing.T) {
	got, err := parseOverrides([]string{"live.driver=sqlite3", "environment.copy=a.*,b.*", "staging="})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"live.driver":      "sqlite3",
		"environment.copy": "a.*,b.*",
		"staging":          "",
	}, got)

	_, err = parseOverrides([]string{"novalue"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	_, err = parseOverrides([]string{"=x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	got, err = parseOverrides(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHandleError(t *testing.T) {
	var out bytes.Buffer
	code := HandleError(&out, errors.New(errors.ErrUserAbort, "export cancelled"))
	assert.Equal(t, 1, code)
	assert.Equal(t, "Aborted.\n", out.String())

	out.Reset()
	code = HandleError(&out, errors.New(errors.ErrDestination, "the destination is not a directory").
		WithDetail("path", "/site/config/sync"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "Error: ")
	assert.Contains(t, out.String(), "the destination is not a directory")
	assert.Contains(t, out.String(), "path: /site/config/sync")

	assert.Equal(t, 0, HandleError(&out, nil))
}

func TestExportCommand(t *testing.T) {
	root := setupSite(t, map[string]string{
		"system.site.yml":   "name: Site\n",
		"node.settings.yml": "use_admin_theme: true\n",
	})

	out, err := execute(t, "export", "--yes", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "successfully exported")

	data, err := os.ReadFile(filepath.Join(root, "config", "sync", "system.site.yml"))
	require.NoError(t, err)
	assert.Equal(t, "name: Site\n", string(data))

	out, err = execute(t, "diff", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "identical")
}

func TestExportCommandOverrides(t *testing.T) {
	root := setupSite(t, map[string]string{
		"system.site.yml":    "name: Site\n",
		"devel.settings.yml": "page_alter: false\n",
	})

	_, err := execute(t, "export", "-y", "--root", root, "--set", "environment.exclude_config=devel.*")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "config", "sync", "devel.settings.yml"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportCommandUnknownLabel(t *testing.T) {
	root := setupSite(t, map[string]string{"a.yml": "a: 1\n"})

	_, err := execute(t, "export", "prod", "--yes", "--root", root)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDestination))
}

func TestExportCommandAddAndCommitExclusive(t *testing.T) {
	root := setupSite(t, nil)

	_, err := execute(t, "export", "--add", "--commit", "--root", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestDiffCommandShowsChanges(t *testing.T) {
	root := setupSite(t, map[string]string{"system.site.yml": "name: New\n"})
	sync := filepath.Join(root, "config", "sync")
	require.NoError(t, os.MkdirAll(sync, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sync, "system.site.yml"), []byte("name: Old\n"), 0644))

	out, err := execute(t, "diff", "--details", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "system.site")
	assert.Contains(t, out, "+name: New")

	data, err := os.ReadFile(filepath.Join(sync, "system.site.yml"))
	require.NoError(t, err)
	assert.Equal(t, "name: Old\n", string(data))
}

func TestDiffCommandJSON(t *testing.T) {
	root := setupSite(t, map[string]string{"system.site.yml": "name: New\n"})
	sync := filepath.Join(root, "config", "sync")
	require.NoError(t, os.MkdirAll(sync, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sync, "system.site.yml"), []byte("name: Old\n"), 0644))

	out, err := execute(t, "diff", "--format", "json", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "update"`)
	assert.Contains(t, out, `"summary": "1 update"`)

	_, err = execute(t, "diff", "--format", "yaml", "--root", root)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestHelpTopics(t *testing.T) {
	out, err := execute(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "overlays")
	assert.Contains(t, out, "--destination")

	out, err = execute(t, "help", "--set")
	require.NoError(t, err)
	assert.Contains(t, out, "environment.exclude_config=devel.*")

	out, err = execute(t, "help", "diff")
	require.NoError(t, err)
	assert.Contains(t, out, "--format")
}

func TestGenConfigCommand(t *testing.T) {
	root := setupSite(t, nil)

	out, err := execute(t, "gen-config", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "[live]")
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented line: %q", line)
	}

	_, err = execute(t, "gen-config", "-w", "--root", root)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "ezconfig.toml"))
	assert.NoError(t, err)
}
