// Package storage provides persistence for the palette: a small
// key-value slot table (the recency list lives in one slot) and an
// append-only execution log used for usage statistics.
package storage

import "context"

// Store is the persistence boundary. SQLiteStore backs production;
// MemoryStore backs tests and ephemeral sessions.
type Store interface {
	// Key-value slots
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	// Execution log
	AppendExecution(ctx context.Context, e *Execution) error
	QueryExecutions(ctx context.Context, q ExecutionQuery) ([]Execution, error)
	CountExecutions(ctx context.Context) (map[string]int, error)

	Close() error
}

// Execution is one recorded command invocation.
type Execution struct {
	ExecutionID    string // generated when empty
	CommandID      string
	ExecutedUnixMs int64
}

// ExecutionQuery defines parameters for querying the execution log.
type ExecutionQuery struct {
	CommandID string // empty = all commands
	Limit     int    // <=0 = default limit
}
