package document

import (
	"testing"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		ok       bool
	}{
		{"system.site.yml", "system.site", true},
		{"core.extension.yml", "core.extension", true},
		{".yml", "", false},
		{".htaccess", "", false},
		{"README.md", "", false},
		{"system.site.yaml", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, ok := NameFromFilename(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModule(t *testing.T) {
	assert.Equal(t, "node", New("node.settings", nil).Module())
	assert.Equal(t, "node", ModuleOf("node.type.article"))
	assert.Equal(t, "standalone", ModuleOf("standalone"))
}

func TestEqual(t *testing.T) {
	a := New("a", []byte("name: site\nslogan: hi\n"))

	t.Run("key order is ignored", func(t *testing.T) {
		b := New("a", []byte("slogan: hi\nname: site\n"))
		assert.True(t, a.Equal(b))
	})

	t.Run("formatting is ignored", func(t *testing.T) {
		b := New("a", []byte("name:   site\nslogan: 'hi'\n"))
		assert.True(t, a.Equal(b))
	})

	t.Run("value change is detected", func(t *testing.T) {
		b := New("a", []byte("name: site\nslogan: bye\n"))
		assert.False(t, a.Equal(b))
	})

	t.Run("nested change is detected", func(t *testing.T) {
		x := New("x", []byte("module:\n  node: 0\n  user: 0\n"))
		y := New("x", []byte("module:\n  node: 0\n"))
		assert.False(t, x.Equal(y))
	})

	t.Run("nil handling", func(t *testing.T) {
		var nilDoc *Document
		assert.False(t, a.Equal(nil))
		assert.True(t, nilDoc.Equal(nil))
	})

	t.Run("malformed falls back to bytes", func(t *testing.T) {
		bad := New("bad", []byte("key: [unclosed\n"))
		assert.True(t, bad.Equal(New("bad", []byte("key: [unclosed\n"))))
		assert.False(t, bad.Equal(a))
	})
}

func TestFromValueRoundTrip(t *testing.T) {
	value := map[string]interface{}{
		"module": map[string]interface{}{"node": 0, "user": 0},
		"theme":  map[string]interface{}{"olivero": 0},
	}

	doc, err := FromValue("core.extension", value)
	require.NoError(t, err)
	assert.Equal(t, "core.extension.yml", doc.Filename())
	assert.Contains(t, string(doc.Data), "module:\n  node: 0\n")

	var decoded map[string]interface{}
	require.NoError(t, doc.Decode(&decoded))
	assert.Equal(t, map[string]interface{}{"node": 0, "user": 0}, decoded["module"])
}

func TestNodeReportsFormatError(t *testing.T) {
	_, err := New("broken", []byte("a: [\n")).Node()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDocumentFormat))
	assert.Equal(t, "broken", errors.GetErrorDetails(err)["document"])
}
