package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/document"
	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
)

// FileStore keeps one file per document below a root directory.
// Files without the document extension are never read or removed.
type FileStore struct {
	fs         filesystem.FS
	root       string
	collection string
}

// NewFileStore creates a store rooted at root, bound to the default collection.
func NewFileStore(fsys filesystem.FS, root string) *FileStore {
	return &FileStore{fs: fsys, root: filepath.Clean(root)}
}

// Root returns the directory holding the default collection.
func (s *FileStore) Root() string {
	return s.root
}

// FS returns the filesystem the store writes to.
func (s *FileStore) FS() filesystem.FS {
	return s.fs
}

// Dir returns the directory of the bound collection.
func (s *FileStore) Dir() string {
	if s.collection == DefaultCollection {
		return s.root
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.ReplaceAll(s.collection, ".", "/")))
}

// Path returns the file path of a document in the bound collection.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.Dir(), document.Filename(name))
}

func (s *FileStore) Collection() string {
	return s.collection
}

func (s *FileStore) WithCollection(collection string) Store {
	return s.Bind(collection)
}

// Bind is WithCollection returning the concrete type.
func (s *FileStore) Bind(collection string) *FileStore {
	return &FileStore{fs: s.fs, root: s.root, collection: collection}
}

// ListCollections walks the subdirectories of the root. A directory is a
// collection when it directly holds at least one document; dot-directories
// (VCS metadata) are skipped.
func (s *FileStore) ListCollections(ctx context.Context) ([]string, error) {
	var collections []string
	if err := s.collectCollections(s.root, "", &collections); err != nil {
		return nil, err
	}
	sort.Strings(collections)
	return collections, nil
}

func (s *FileStore) collectCollections(dir, prefix string, out *[]string) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.IO(err, errors.ErrFileAccess, "read directory", dir)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()
		if prefix != "" {
			name = prefix + "." + name
		}
		sub := filepath.Join(dir, entry.Name())
		has, err := s.dirHasDocuments(sub)
		if err != nil {
			return err
		}
		if has {
			*out = append(*out, name)
		}
		if err := s.collectCollections(sub, name, out); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStore) dirHasDocuments(dir string) (bool, error) {
	names, err := s.listDir(dir)
	return len(names) > 0, err
}

func (s *FileStore) listDir(dir string) ([]string, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.IO(err, errors.ErrFileAccess, "read directory", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := document.NameFromFilename(entry.Name()); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) ListAll(ctx context.Context) ([]string, error) {
	return s.listDir(s.Dir())
}

func (s *FileStore) Read(ctx context.Context, name string) (*document.Document, error) {
	path := s.Path(name)
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(s.collection, name)
		}
		return nil, errors.IO(err, errors.ErrFileAccess, "read", path)
	}
	return document.New(name, data), nil
}

func (s *FileStore) ReadAll(ctx context.Context) (map[string]*document.Document, error) {
	names, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	docs := make(map[string]*document.Document, len(names))
	for _, name := range names {
		doc, err := s.Read(ctx, name)
		if err != nil {
			return nil, err
		}
		docs[name] = doc
	}
	return docs, nil
}

func (s *FileStore) Write(ctx context.Context, doc *document.Document) error {
	if err := filesystem.EnsureDir(s.fs, s.Dir()); err != nil {
		return err
	}
	path := s.Path(doc.Name)
	if err := s.fs.WriteFile(path, doc.Data, 0644); err != nil {
		return errors.IO(err, errors.ErrFileWrite, "write", path)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	path := s.Path(name)
	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.IO(err, errors.ErrFileDelete, "delete", path)
	}
	return nil
}

func (s *FileStore) DeleteAll(ctx context.Context) error {
	names, err := s.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := s.Delete(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
