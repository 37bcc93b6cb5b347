// Package manifest edits the document that lists the enabled modules.
package manifest

import (
	"github.com/arthur-debert/ezconfig/pkg/document"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultName is the manifest document name.
const DefaultName = "core.extension"

// ModuleKey is the top-level key mapping module names to their weight.
const ModuleKey = "module"

// Modules returns the module names in manifest order.
func Modules(doc *document.Document) ([]string, error) {
	_, modules, err := moduleMapping(doc)
	if err != nil {
		return nil, err
	}
	var names []string
	for i := 0; i+1 < len(modules.Content); i += 2 {
		names = append(names, modules.Content[i].Value)
	}
	return names, nil
}

// Strip returns a manifest without the entries of the given modules, and the
// names actually removed. Every other key keeps its value and position. When
// nothing is removed the original document is returned untouched.
func Strip(doc *document.Document, exclude []string) (*document.Document, []string, error) {
	root, modules, err := moduleMapping(doc)
	if err != nil {
		return nil, nil, err
	}

	drop := make(map[string]bool, len(exclude))
	for _, m := range exclude {
		drop[m] = true
	}

	kept := &yaml.Node{
		Kind:        yaml.MappingNode,
		Tag:         modules.Tag,
		Style:       modules.Style,
		HeadComment: modules.HeadComment,
		LineComment: modules.LineComment,
		FootComment: modules.FootComment,
	}
	var removed []string
	for i := 0; i+1 < len(modules.Content); i += 2 {
		key, value := modules.Content[i], modules.Content[i+1]
		if drop[key.Value] {
			removed = append(removed, key.Value)
			continue
		}
		kept.Content = append(kept.Content, key, value)
	}
	if len(removed) == 0 {
		return doc, nil, nil
	}

	out, err := document.Encode(replaceModules(root, kept))
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrManifestFormat, "failed to encode %s", doc.Name).
			WithDetail("document", doc.Name)
	}
	return document.New(doc.Name, out), removed, nil
}

// moduleMapping returns the document node and the module mapping node.
func moduleMapping(doc *document.Document) (*yaml.Node, *yaml.Node, error) {
	if doc == nil {
		return nil, nil, errors.New(errors.ErrManifestFormat, "module manifest is missing")
	}
	root, err := doc.Node()
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrManifestFormat, "module manifest %s is malformed", doc.Name).
			WithDetail("document", doc.Name)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 || root.Content[0].Kind != yaml.MappingNode {
		return nil, nil, formatError(doc, "top level is not a mapping")
	}
	top := root.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value != ModuleKey {
			continue
		}
		value := top.Content[i+1]
		if value.Kind != yaml.MappingNode {
			return nil, nil, formatError(doc, "module is not a mapping")
		}
		return root, value, nil
	}
	return nil, nil, formatError(doc, "module key is missing")
}

// replaceModules builds a new document tree sharing every node except the
// top-level mapping, whose module value is swapped for modules.
func replaceModules(root, modules *yaml.Node) *yaml.Node {
	top := *root.Content[0]
	top.Content = make([]*yaml.Node, len(root.Content[0].Content))
	copy(top.Content, root.Content[0].Content)
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value == ModuleKey {
			top.Content[i+1] = modules
		}
	}
	doc := *root
	doc.Content = []*yaml.Node{&top}
	return &doc
}

func formatError(doc *document.Document, reason string) error {
	return errors.Newf(errors.ErrManifestFormat, "module manifest %s is malformed: %s", doc.Name, reason).
		WithDetail("document", doc.Name)
}
