package store

import (
	"context"

	"github.com/arthur-debert/ezconfig/pkg/errors"
	"github.com/arthur-debert/ezconfig/pkg/filesystem"
)

// LiveOptions selects the backend of the live store.
type LiveOptions struct {
	// Driver is "file" or a database driver name.
	Driver string
	// DSN is the database connection string.
	DSN string
	// Table is the database table; defaults to DefaultTable.
	Table string
	// Directory is the root of a file-backed live store.
	Directory string
}

// DriverFile selects a FileStore for the live store.
const DriverFile = "file"

// OpenLive opens the live store described by opts. The returned close function
// is never nil.
func OpenLive(ctx context.Context, fsys filesystem.FS, opts LiveOptions) (Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case "", DriverFile:
		if opts.Directory == "" {
			return nil, noop, errors.New(errors.ErrInvalidInput, "live directory is not configured")
		}
		if !filesystem.IsDir(fsys, opts.Directory) {
			return nil, noop, errors.Newf(errors.ErrNotFound, "live directory %s does not exist", opts.Directory).
				WithDetail("path", opts.Directory)
		}
		return NewFileStore(fsys, opts.Directory), noop, nil
	default:
		db, err := OpenDatabase(ctx, opts.Driver, opts.DSN, opts.Table)
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	}
}
