package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const defaultQueryLimit = 100

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db        *sql.DB
	closeOnce sync.Once
	closeErr  error
}

// DefaultDBPath returns the default database path (~/.cmdpal/state.db).
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cmdpal", "state.db"), nil
}

// NewSQLiteStore opens (and if necessary creates) the database at
// dbPath. An empty path uses the default location. WAL mode is enabled
// for better concurrency.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		var err error
		dbPath, err = DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles concurrency better with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// initSchema creates the tables if they do not exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_state (
			key                TEXT PRIMARY KEY,
			value              TEXT NOT NULL,
			updated_at_unix_ms INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS executions (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			execution_id        TEXT NOT NULL UNIQUE,
			command_id          TEXT NOT NULL,
			executed_at_unix_ms INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_executions_command
			ON executions(command_id, executed_at_unix_ms DESC);
	`)
	return err
}

// Get reads a key-value slot. The second return is false when the key
// does not exist.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set writes a key-value slot, replacing any previous value.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_state (key, value, updated_at_unix_ms)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at_unix_ms = excluded.updated_at_unix_ms
	`, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key-value slot. Deleting a missing key is not an
// error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// AppendExecution records a command invocation in the log. A missing
// ExecutionID or timestamp is filled in.
func (s *SQLiteStore) AppendExecution(ctx context.Context, e *Execution) error {
	if e == nil {
		return errors.New("execution cannot be nil")
	}
	if e.CommandID == "" {
		return errors.New("command_id is required")
	}
	if e.ExecutionID == "" {
		e.ExecutionID = uuid.New().String()
	}
	if e.ExecutedUnixMs == 0 {
		e.ExecutedUnixMs = time.Now().UnixMilli()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO executions (execution_id, command_id, executed_at_unix_ms)
		VALUES (?, ?, ?)
	`, e.ExecutionID, e.CommandID, e.ExecutedUnixMs)
	if err != nil {
		return fmt.Errorf("failed to append execution: %w", err)
	}
	return nil
}

// QueryExecutions returns log entries, most recent first.
func (s *SQLiteStore) QueryExecutions(ctx context.Context, q ExecutionQuery) ([]Execution, error) {
	query := `
		SELECT execution_id, command_id, executed_at_unix_ms
		FROM executions
		WHERE 1=1
	`
	args := make([]interface{}, 0, 2)

	if q.CommandID != "" {
		query += " AND command_id = ?"
		args = append(args, q.CommandID)
	}

	query += " ORDER BY executed_at_unix_ms DESC LIMIT ?"
	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}
	defer rows.Close()

	var executions []Execution
	for rows.Next() {
		var e Execution
		if err := rows.Scan(&e.ExecutionID, &e.CommandID, &e.ExecutedUnixMs); err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		executions = append(executions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating executions: %w", err)
	}
	return executions, nil
}

// CountExecutions returns the total invocation count per command ID.
func (s *SQLiteStore) CountExecutions(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT command_id, COUNT(*) FROM executions GROUP BY command_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count executions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan execution count: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating execution counts: %w", err)
	}
	return counts, nil
}

// Close closes the database connection. Safe to call multiple times.
func (s *SQLiteStore) Close() error {
	s.closeOnce.Do(func() {
		if s.db != nil {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			s.closeErr = s.db.Close()
		}
	})
	return s.closeErr
}
