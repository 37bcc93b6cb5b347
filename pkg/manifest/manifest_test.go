package manifest

import (
	"testing"

	"github.com/arthur-debert/ezconfig/pkg/document"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coreExtension = `module:
  block: 0
  node: 0
  devel: 0
  user: 0
  standard: 1000
theme:
  olivero: 0
profile: standard
`

func TestStrip(t *testing.T) {
	doc := document.New(DefaultName, []byte(coreExtension))

	out, removed, err := Strip(doc, []string{"node", "devel", "not_installed"})
	require.NoError(t, err)
	assert.Equal(t, []string{"node", "devel"}, removed)

	modules, err := Modules(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"block", "user", "standard"}, modules)

	var got struct {
		Module  map[string]int `yaml:"module"`
		Theme   map[string]int `yaml:"theme"`
		Profile string         `yaml:"profile"`
	}
	require.NoError(t, out.Decode(&got))
	assert.Equal(t, map[string]int{"block": 0, "user": 0, "standard": 1000}, got.Module)
	assert.Equal(t, map[string]int{"olivero": 0}, got.Theme)
	assert.Equal(t, "standard", got.Profile)

	// the input is not modified
	modules, err = Modules(doc)
	require.NoError(t, err)
	assert.Contains(t, modules, "node")
}

func TestStripKeepsKeyOrder(t *testing.T) {
	doc := document.New(DefaultName, []byte(coreExtension))
	out, _, err := Strip(doc, []string{"node"})
	require.NoError(t, err)
	assert.Equal(t, `module:
  block: 0
  devel: 0
  user: 0
  standard: 1000
theme:
  olivero: 0
profile: standard
`, string(out.Data))
}

func TestStripNothingToRemove(t *testing.T) {
	doc := document.New(DefaultName, []byte("module: {node: true, user: true}\n"))
	out, removed, err := Strip(doc, []string{"devel"})
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.Same(t, doc, out)
}

func TestStripScenario(t *testing.T) {
	doc := document.New(DefaultName, []byte("module:\n  node: true\n  user: true\n"))
	out, _, err := Strip(doc, []string{"node"})
	require.NoError(t, err)
	assert.Equal(t, "module:\n  user: true\n", string(out.Data))
}

func TestStripFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *document.Document
	}{
		{name: "missing", doc: nil},
		{name: "unparsable", doc: document.New(DefaultName, []byte("module: [unclosed"))},
		{name: "not a mapping", doc: document.New(DefaultName, []byte("- a\n- b\n"))},
		{name: "no module key", doc: document.New(DefaultName, []byte("theme: {}\n"))},
		{name: "module is a list", doc: document.New(DefaultName, []byte("module:\n  - node\n"))},
		{name: "empty", doc: document.New(DefaultName, []byte(""))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Strip(tt.doc, []string{"node"})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrManifestFormat), "got %v", err)
		})
	}
}
