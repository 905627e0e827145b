package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Collection names persisted in the records table. The store itself is
// schema-less beyond the id key; these constants are the known partitions.
const (
	CollectionTasks         = "tasks"
	CollectionSubtasks      = "subtasks"
	CollectionTabs          = "tabs"
	CollectionNotes         = "notes"
	CollectionSessionEvents = "sessionEvents"
	CollectionSettings      = "settings"
)

// Collections lists every known collection, for iteration (e.g. status counts).
func Collections() []string {
	return []string{
		CollectionTasks,
		CollectionSubtasks,
		CollectionTabs,
		CollectionNotes,
		CollectionSessionEvents,
		CollectionSettings,
	}
}

// Store is a persistent keyed-collection store backed by SQLite. Records are
// JSON blobs partitioned into named collections, each keyed by an opaque id.
//
// The store opens lazily: the first operation (from any goroutine) triggers
// exactly one open+migrate, and every operation waits on that. An open
// failure is remembered and returned to all subsequent callers.
type Store struct {
	path string

	openOnce sync.Once
	openErr  error
	db       *sql.DB

	putStmt    *sql.Stmt
	getStmt    *sql.Stmt
	getAllStmt *sql.Stmt
}

// New creates a Store for the database at path. The database is not touched
// until the first operation.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the database path this store was created with.
func (s *Store) Path() string {
	return s.path
}

// open initializes the database exactly once and reports the cached result.
func (s *Store) open() error {
	s.openOnce.Do(func() {
		s.openErr = s.doOpen()
	})
	return s.openErr
}

func (s *Store) doOpen() error {
	inMemory := strings.Contains(s.path, ":memory:")

	if !inMemory {
		if dir := filepath.Dir(s.path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", s.path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	// An in-memory SQLite database exists per connection; pin the pool to
	// one connection so all operations see the same data.
	if inMemory {
		db.SetMaxOpenConns(1)
	}

	runner := NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	if err := s.prepareStatements(db); err != nil {
		db.Close()
		return fmt.Errorf("prepare statements: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) prepareStatements(db *sql.DB) error {
	var err error

	s.putStmt, err = db.Prepare(`
		INSERT INTO records (collection, id, data)
		VALUES (?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return err
	}

	s.getStmt, err = db.Prepare(`
		SELECT data FROM records WHERE collection = ? AND id = ?
	`)
	if err != nil {
		return err
	}

	s.getAllStmt, err = db.Prepare(`
		SELECT data FROM records WHERE collection = ?
	`)
	if err != nil {
		return err
	}

	return nil
}

// Put inserts or fully replaces the record at (collection, id). Prior fields
// not present in the new record do not survive.
func (s *Store) Put(ctx context.Context, collection, id string, record any) error {
	if err := s.open(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record %s/%s: %w", collection, id, err)
	}

	if _, err := s.putStmt.ExecContext(ctx, collection, id, string(data)); err != nil {
		return fmt.Errorf("put record %s/%s: %w", collection, id, err)
	}

	return nil
}

// Get retrieves a record by id and decodes it into T. Absence is a normal
// outcome: it reports nil, nil rather than an error.
func Get[T any](ctx context.Context, s *Store, collection, id string) (*T, error) {
	if err := s.open(); err != nil {
		return nil, err
	}

	var data string
	err := s.getStmt.QueryRowContext(ctx, collection, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s/%s: %w", collection, id, err)
	}

	var record T
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("decode record %s/%s: %w", collection, id, err)
	}

	return &record, nil
}

// GetAll retrieves every record in a collection, decoded into a []T in store
// iteration order. An empty collection yields an empty slice, never an error.
func GetAll[T any](ctx context.Context, s *Store, collection string) ([]T, error) {
	if err := s.open(); err != nil {
		return nil, err
	}

	rows, err := s.getAllStmt.QueryContext(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("query collection %s: %w", collection, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan record in %s: %w", collection, err)
		}

		var record T
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			return nil, fmt.Errorf("decode record in %s: %w", collection, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Count reports the number of records in a collection.
func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	if err := s.open(); err != nil {
		return 0, err
	}

	var n int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE collection = ?", collection,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count collection %s: %w", collection, err)
	}
	return n, nil
}

// Close releases prepared statements and the underlying database. Safe to
// call on a store that was never opened.
func (s *Store) Close() error {
	for _, stmt := range []*sql.Stmt{s.putStmt, s.getStmt, s.getAllStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
