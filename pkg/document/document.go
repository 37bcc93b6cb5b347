// Package document holds the unit of configuration that ezconfig moves around:
// one named document, serialized as YAML, one file per document on disk.
//
// Documents carry their encoded bytes so that stores can copy them verbatim.
// Structural comparison and manifest edits decode on demand.
package document

import (
	"bytes"
	"reflect"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Extension is the serialization file extension, without the leading dot.
const Extension = "yml"

// Document is one named configuration document.
type Document struct {
	Name string
	Data []byte
}

// New creates a document from already encoded data.
func New(name string, data []byte) *Document {
	return &Document{Name: name, Data: data}
}

// FromValue encodes v and returns it as a document.
func FromValue(name string, v interface{}) (*Document, error) {
	data, err := Encode(v)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDocumentFormat, "failed to encode %s", name)
	}
	return New(name, data), nil
}

// Filename returns the on-disk file name for a document name.
func Filename(name string) string {
	return name + "." + Extension
}

// NameFromFilename strips the serialization extension. The second return value
// is false when filename is not a document file.
func NameFromFilename(filename string) (string, bool) {
	suffix := "." + Extension
	if !strings.HasSuffix(filename, suffix) || len(filename) == len(suffix) {
		return "", false
	}
	return strings.TrimSuffix(filename, suffix), true
}

// Filename returns the on-disk file name of the document.
func (d *Document) Filename() string {
	return Filename(d.Name)
}

// Module returns the owning module, which is the name prefix before the first dot.
func (d *Document) Module() string {
	return ModuleOf(d.Name)
}

// ModuleOf returns the owning module of a document name.
func ModuleOf(name string) string {
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

// Node decodes the document into a yaml node tree, preserving key order.
func (d *Document) Node() (*yaml.Node, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(d.Data, &node); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDocumentFormat, "failed to parse %s", d.Name).
			WithDetail("document", d.Name)
	}
	return &node, nil
}

// Decode unmarshals the document into v.
func (d *Document) Decode(v interface{}) error {
	if err := yaml.Unmarshal(d.Data, v); err != nil {
		return errors.Wrapf(err, errors.ErrDocumentFormat, "failed to parse %s", d.Name).
			WithDetail("document", d.Name)
	}
	return nil
}

// Equal reports whether two documents hold the same structured content.
// Mapping key order and formatting are ignored; documents that fail to parse
// fall back to a byte comparison.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	var a, b interface{}
	if yaml.Unmarshal(d.Data, &a) != nil || yaml.Unmarshal(other.Data, &b) != nil {
		return bytes.Equal(d.Data, other.Data)
	}
	return reflect.DeepEqual(a, b)
}

// Encode serializes v the way documents are written to disk: two-space indent.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
