package store

import (
	"context"
	"sort"

	"github.com/arthur-debert/ezconfig/pkg/document"
)

// MemoryStore keeps documents in process memory. Views returned by
// WithCollection share the same data.
type MemoryStore struct {
	data       map[string]map[string][]byte
	collection string
}

// NewMemoryStore creates an empty store bound to the default collection.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

// Put writes raw data into a collection. It is a shorthand for tests and
// fixtures that do not need a context.
func (s *MemoryStore) Put(collection, name, data string) *MemoryStore {
	if s.data[collection] == nil {
		s.data[collection] = make(map[string][]byte)
	}
	s.data[collection][name] = []byte(data)
	return s
}

func (s *MemoryStore) Collection() string {
	return s.collection
}

func (s *MemoryStore) WithCollection(collection string) Store {
	return &MemoryStore{data: s.data, collection: collection}
}

func (s *MemoryStore) ListCollections(ctx context.Context) ([]string, error) {
	var collections []string
	for name, docs := range s.data {
		if name != DefaultCollection && len(docs) > 0 {
			collections = append(collections, name)
		}
	}
	sort.Strings(collections)
	return collections, nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]string, error) {
	var names []string
	for name := range s.data[s.collection] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Read(ctx context.Context, name string) (*document.Document, error) {
	data, ok := s.data[s.collection][name]
	if !ok {
		return nil, notFound(s.collection, name)
	}
	return document.New(name, append([]byte(nil), data...)), nil
}

func (s *MemoryStore) ReadAll(ctx context.Context) (map[string]*document.Document, error) {
	docs := make(map[string]*document.Document, len(s.data[s.collection]))
	for name, data := range s.data[s.collection] {
		docs[name] = document.New(name, append([]byte(nil), data...))
	}
	return docs, nil
}

func (s *MemoryStore) Write(ctx context.Context, doc *document.Document) error {
	s.Put(s.collection, doc.Name, string(doc.Data))
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	delete(s.data[s.collection], name)
	return nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context) error {
	delete(s.data, s.collection)
	return nil
}
