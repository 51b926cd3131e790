package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"
	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schemaSQL string

// Supported database/sql driver names.
const (
	DriverCgo    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

var (
	// ErrNotFound is returned when a row with the requested id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when a username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")
)

// Options configures how the store opens its database.
type Options struct {
	Driver string
	Path   string
}

// Store is the relational record store for saturn records, notes and users.
type Store struct {
	db *sql.DB
}

// Open opens the database at opts.Path and ensures the schema exists.
func Open(ctx context.Context, opts Options) (*Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverCgo
	}
	if driver != DriverCgo && driver != DriverPureGo {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	path := opts.Path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[1:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, dsn(driver, path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func dsn(driver, path string) string {
	if driver == DriverPureGo {
		return "file:" + path + "?_pragma=busy_timeout(5000)"
	}
	return path + "?_busy_timeout=5000"
}

// EnsureSchema creates every table that does not exist yet. Safe to call
// repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure from
// either supported driver.
func isUniqueViolation(err error) bool {
	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		return cgoErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pureErr *sqlite.Error
	if errors.As(err, &pureErr) {
		return pureErr.Code() == sqlitelib.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// affectedOrNotFound maps a zero-row write to ErrNotFound.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
