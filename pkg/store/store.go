// Package store provides the document store abstraction: an addressable,
// enumerable set of collections, each holding named documents.
//
// Three backends exist:
//   - FileStore: one file per document under a directory; named collections
//     live in subdirectories ("language.fr" is stored in "language/fr").
//   - DatabaseStore: rows of (collection, name, data) in a SQL table, the way
//     a live site keeps its active configuration.
//   - MemoryStore: an in-process map, used by tests and dry runs.
//
// A Store value is bound to one collection; WithCollection returns a view of
// another collection over the same backing data.
package store

import (
	"context"
	"sort"

	"github.com/arthur-debert/ezconfig/pkg/document"
	"github.com/arthur-debert/ezconfig/pkg/errors"
)

// DefaultCollection is the unnamed collection every store has.
const DefaultCollection = ""

// Store is a named collection of documents.
type Store interface {
	// Collection returns the collection this view is bound to.
	Collection() string

	// WithCollection returns a view bound to another collection.
	WithCollection(collection string) Store

	// ListCollections returns the named (non-default) collections, sorted.
	ListCollections(ctx context.Context) ([]string, error)

	// ListAll returns the document names in the bound collection, sorted.
	ListAll(ctx context.Context) ([]string, error)

	// Read returns one document; a missing document is an ErrNotFound error.
	Read(ctx context.Context, name string) (*document.Document, error)

	// ReadAll returns every document of the bound collection keyed by name.
	ReadAll(ctx context.Context) (map[string]*document.Document, error)

	// Write creates or replaces a document.
	Write(ctx context.Context, doc *document.Document) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error

	// DeleteAll removes every document of the bound collection.
	DeleteAll(ctx context.Context) error
}

// AllCollections returns the default collection followed by the named ones.
func AllCollections(ctx context.Context, s Store) ([]string, error) {
	named, err := s.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{DefaultCollection}, named...), nil
}

// HasDocuments reports whether any collection of s holds at least one document.
func HasDocuments(ctx context.Context, s Store) (bool, error) {
	collections, err := AllCollections(ctx, s)
	if err != nil {
		return false, err
	}
	for _, c := range collections {
		names, err := s.WithCollection(c).ListAll(ctx)
		if err != nil {
			return false, err
		}
		if len(names) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// CopyAll writes every document of every collection of src into dst, keeping
// the source encoding byte for byte. It returns the number of documents written.
func CopyAll(ctx context.Context, src, dst Store) (int, error) {
	collections, err := AllCollections(ctx, src)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, c := range collections {
		docs, err := src.WithCollection(c).ReadAll(ctx)
		if err != nil {
			return written, err
		}
		target := dst.WithCollection(c)
		for _, name := range SortedNames(docs) {
			if err := target.Write(ctx, docs[name]); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}

// DeleteEverything removes the documents of every collection of s.
func DeleteEverything(ctx context.Context, s Store) error {
	collections, err := AllCollections(ctx, s)
	if err != nil {
		return err
	}
	for _, c := range collections {
		if err := s.WithCollection(c).DeleteAll(ctx); err != nil {
			return err
		}
	}
	return nil
}

// SortedNames returns the keys of docs in lexical order.
func SortedNames(docs map[string]*document.Document) []string {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func notFound(collection, name string) error {
	return errors.Newf(errors.ErrNotFound, "document %s not found", name).
		WithDetail("collection", collection).
		WithDetail("document", name)
}
