package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/ezconfig/pkg/document"
	"github.com/arthur-debert/ezconfig/pkg/errors"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
)

// DefaultTable is the table holding live configuration rows.
const DefaultTable = "config"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DatabaseStore reads and writes documents as rows of (collection, name, data).
type DatabaseStore struct {
	db         *sql.DB
	driver     string
	table      string
	collection string
}

// OpenDatabase opens and pings a database connection and returns a store over
// table. The caller owns closing the store.
func OpenDatabase(ctx context.Context, driver, dsn, table string) (*DatabaseStore, error) {
	if dsn == "" {
		return nil, errors.New(errors.ErrInvalidInput, "database dsn is empty").
			WithDetail("driver", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to open %s database", driver).
			WithDetail("driver", driver)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to connect to %s database", driver).
			WithDetail("driver", driver)
	}
	s, err := NewDatabaseStore(db, driver, table)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewDatabaseStore wraps an open connection.
func NewDatabaseStore(db *sql.DB, driver, table string) (*DatabaseStore, error) {
	switch driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported database driver %q", driver).
			WithDetail("driver", driver)
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid table name %q", table).
			WithDetail("table", table)
	}
	return &DatabaseStore{db: db, driver: driver, table: table}, nil
}

// Close closes the underlying connection.
func (s *DatabaseStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the configuration table when it does not exist.
func (s *DatabaseStore) EnsureSchema(ctx context.Context) error {
	dataType := "BLOB"
	switch s.driver {
	case DriverMySQL:
		dataType = "LONGBLOB"
	case DriverPostgres:
		dataType = "BYTEA"
	}
	query := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (collection VARCHAR(255) NOT NULL DEFAULT '', name VARCHAR(255) NOT NULL, data %s, PRIMARY KEY (collection, name))",
		s.table, dataType)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return s.fail(err, "create table")
	}
	return nil
}

func (s *DatabaseStore) Collection() string {
	return s.collection
}

func (s *DatabaseStore) WithCollection(collection string) Store {
	return &DatabaseStore{db: s.db, driver: s.driver, table: s.table, collection: collection}
}

func (s *DatabaseStore) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		s.query("SELECT DISTINCT collection FROM %s WHERE collection <> ? ORDER BY collection"),
		DefaultCollection)
	if err != nil {
		return nil, s.fail(err, "list collections")
	}
	return scanStrings(rows, s)
}

func (s *DatabaseStore) ListAll(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		s.query("SELECT name FROM %s WHERE collection = ? ORDER BY name"),
		s.collection)
	if err != nil {
		return nil, s.fail(err, "list documents")
	}
	return scanStrings(rows, s)
}

func (s *DatabaseStore) Read(ctx context.Context, name string) (*document.Document, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		s.query("SELECT data FROM %s WHERE collection = ? AND name = ?"),
		s.collection, name).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(s.collection, name)
	}
	if err != nil {
		return nil, s.fail(err, "read "+name)
	}
	return document.New(name, data), nil
}

func (s *DatabaseStore) ReadAll(ctx context.Context) (map[string]*document.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		s.query("SELECT name, data FROM %s WHERE collection = ? ORDER BY name"),
		s.collection)
	if err != nil {
		return nil, s.fail(err, "read documents")
	}
	defer func() { _ = rows.Close() }()

	docs := make(map[string]*document.Document)
	for rows.Next() {
		var name string
		var data []byte
		if err := rows.Scan(&name, &data); err != nil {
			return nil, s.fail(err, "scan document")
		}
		docs[name] = document.New(name, data)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(err, "read documents")
	}
	return docs, nil
}

// Write replaces the row in a transaction so it works the same on every driver.
func (s *DatabaseStore) Write(ctx context.Context, doc *document.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail(err, "begin transaction")
	}
	if _, err := tx.ExecContext(ctx,
		s.query("DELETE FROM %s WHERE collection = ? AND name = ?"),
		s.collection, doc.Name); err != nil {
		_ = tx.Rollback()
		return s.fail(err, "write "+doc.Name)
	}
	if _, err := tx.ExecContext(ctx,
		s.query("INSERT INTO %s (collection, name, data) VALUES (?, ?, ?)"),
		s.collection, doc.Name, doc.Data); err != nil {
		_ = tx.Rollback()
		return s.fail(err, "write "+doc.Name)
	}
	if err := tx.Commit(); err != nil {
		return s.fail(err, "commit "+doc.Name)
	}
	return nil
}

func (s *DatabaseStore) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx,
		s.query("DELETE FROM %s WHERE collection = ? AND name = ?"),
		s.collection, name); err != nil {
		return s.fail(err, "delete "+name)
	}
	return nil
}

func (s *DatabaseStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		s.query("DELETE FROM %s WHERE collection = ?"),
		s.collection); err != nil {
		return s.fail(err, "delete collection")
	}
	return nil
}

// query fills in the table name and rewrites placeholders for the driver.
func (s *DatabaseStore) query(format string) string {
	return rebind(s.driver, fmt.Sprintf(format, s.table))
}

func (s *DatabaseStore) fail(err error, op string) error {
	return errors.Wrapf(err, errors.ErrStore, "database %s failed", op).
		WithDetail("table", s.table).
		WithDetail("collection", s.collection)
}

// rebind turns '?' placeholders into '$n' for PostgreSQL.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func scanStrings(rows *sql.Rows, s *DatabaseStore) ([]string, error) {
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, s.fail(err, "scan")
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(err, "scan")
	}
	return out, nil
}
