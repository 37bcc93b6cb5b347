package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/ezconfig/pkg/errors"
)

// Exists reports whether path exists.
func Exists(fsys FS, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether path exists and is a directory.
func IsDir(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// EnsureDir creates path and any missing parents. Existing directories are fine.
func EnsureDir(fsys FS, path string) error {
	if err := fsys.MkdirAll(path, 0755); err != nil {
		return errors.IO(err, errors.ErrDirCreate, "create directory", path)
	}
	return nil
}

// CopyFile copies the contents of src to dst, creating dst's parent directories
// and overwriting dst when it exists. The source file mode is kept.
func CopyFile(fsys FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.IO(err, errors.ErrFileAccess, "stat", src)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "cannot copy directory %s as a file", src).
			WithDetail("path", src)
	}

	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.IO(err, errors.ErrFileAccess, "read", src)
	}

	if err := EnsureDir(fsys, filepath.Dir(dst)); err != nil {
		return err
	}

	if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.IO(err, errors.ErrFileWrite, "write", dst)
	}
	return nil
}

// Scan walks root and returns the slash-separated paths, relative to root, of
// every regular file accepted by match. Results are sorted. A missing root
// yields no files.
func Scan(fsys FS, root string, match func(rel string) bool) ([]string, error) {
	if !IsDir(fsys, root) {
		return nil, nil
	}

	var files []string
	err := fsys.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if match == nil || match(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.IO(err, errors.ErrFileAccess, "scan", root)
	}

	sort.Strings(files)
	return files, nil
}
