// Package store persists per-directory counters in a relational table.
//
// The table has three columns: id (assigned by the database),
// directory_name (the lookup key) and current_number. A session reads the
// counter once with Fetch and writes it back once with Persist; Ensure seeds
// the row the first time a directory is seen.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when no row matches a directory name.
var ErrNotFound = errors.New("counter record not found")

// ConnectionError reports a database that could not be opened or reached.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// WriteError reports a failed insert or update.
type WriteError struct {
	Op            string
	DirectoryName string
	Err           error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.DirectoryName, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Record is one row of the counter table.
type Record struct {
	ID            int64
	DirectoryName string
	CurrentNumber int64
}

// Store is a counter table behind a single connection pool.
type Store struct {
	db     *sql.DB
	driver string
	table  string
	q      queries
	log    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for query diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open connects to the database named by url and binds the store to table.
// The pool is opened once and pinged; failures are reported as
// *ConnectionError.
func Open(ctx context.Context, url, table string, opts ...Option) (*Store, error) {
	if err := checkIdent(table); err != nil {
		return nil, err
	}

	target, err := ParseURL(url)
	if err != nil {
		return nil, &ConnectionError{URL: url, Err: err}
	}

	db, err := sql.Open(target.Driver, target.DSN)
	if err != nil {
		return nil, &ConnectionError{URL: url, Err: err}
	}
	// One statement is ever in flight, and a single connection keeps
	// in-memory databases alive for the life of the pool.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{URL: url, Err: err}
	}

	s := &Store{
		db:     db,
		driver: target.Driver,
		table:  table,
		q:      buildQueries(table),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug("opened store", "driver", target.Driver, "table", table)
	return s, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateTable creates the counter table if it does not exist, with a unique
// constraint on directory_name.
func (s *Store) CreateTable(ctx context.Context) error {
	for _, stmt := range schemaSQL(s.driver, s.table) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating table %s: %w", s.table, err)
		}
	}
	return nil
}

// Ensure inserts a row for name with current_number = initial unless one
// already exists. Calling it repeatedly never adds rows or overwrites an
// existing counter.
func (s *Store) Ensure(ctx context.Context, name string, initial int64) error {
	res, err := s.db.ExecContext(ctx, s.q.ensure, name, initial, name)
	if err != nil {
		return &WriteError{Op: "insert", DirectoryName: name, Err: err}
	}
	if n, err := res.RowsAffected(); err == nil {
		s.log.Debug("ensure", "directory", name, "initial", initial, "inserted", n > 0)
	}
	return nil
}

// Fetch returns the record for name, or ErrNotFound.
func (s *Store) Fetch(ctx context.Context, name string) (Record, error) {
	var r Record
	err := s.db.QueryRowContext(ctx, s.q.fetch, name).Scan(&r.ID, &r.DirectoryName, &r.CurrentNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s in %s", ErrNotFound, name, s.table)
	}
	if err != nil {
		return Record{}, fmt.Errorf("fetching %q: %w", name, err)
	}
	s.log.Debug("fetch", "directory", name, "id", r.ID, "current", r.CurrentNumber)
	return r, nil
}

// Persist sets current_number for name. An update that matches no row
// returns ErrNotFound rather than succeeding silently.
func (s *Store) Persist(ctx context.Context, name string, value int64) error {
	res, err := s.db.ExecContext(ctx, s.q.persist, value, name)
	if err != nil {
		return &WriteError{Op: "update", DirectoryName: name, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &WriteError{Op: "update", DirectoryName: name, Err: err}
	}
	if n == 0 {
		return fmt.Errorf("%w: %s in %s", ErrNotFound, name, s.table)
	}
	s.log.Debug("persist", "directory", name, "current", value)
	return nil
}

// checkIdent rejects table names that cannot be safely quoted. Callers
// validate names more strictly at configuration time.
func checkIdent(name string) error {
	if name == "" || strings.ContainsAny(name, "\"'\x00") {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}
