package storage

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu         sync.RWMutex
	kv         map[string]string
	executions []Execution
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{kv: make(map[string]string)}
}

// Get reads a key-value slot.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.kv[key]
	return v, ok, nil
}

// Set writes a key-value slot.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
	return nil
}

// Delete removes a key-value slot.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.kv, key)
	return nil
}

// AppendExecution records a command invocation.
func (s *MemoryStore) AppendExecution(_ context.Context, e *Execution) error {
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

	s.mu.Lock()
	defer s.mu.Unlock()
	s.executions = append(s.executions, *e)
	return nil
}

// QueryExecutions returns log entries, most recent first.
func (s *MemoryStore) QueryExecutions(_ context.Context, q ExecutionQuery) ([]Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Execution, 0, len(s.executions))
	for _, e := range s.executions {
		if q.CommandID != "" && e.CommandID != q.CommandID {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExecutedUnixMs > out[j].ExecutedUnixMs
	})

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountExecutions returns the total invocation count per command ID.
func (s *MemoryStore) CountExecutions(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(s.executions))
	for _, e := range s.executions {
		counts[e.CommandID]++
	}
	return counts, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
