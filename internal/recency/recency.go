// Package recency tracks the most recently executed command IDs in a
// bounded, deduplicated, most-recent-first list. Recency is a
// convenience feature: every storage failure degrades to "no recency
// available" with a logged warning, never an error to the caller.
package recency

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/runger/cmdpal/internal/storage"
)

const (
	// slotKey is the key-value slot holding the persisted list.
	slotKey = "recent_commands"

	// MaxStored caps the persisted list.
	MaxStored = 10

	// DisplaySeed is the default number of entries used to seed
	// empty-query results.
	DisplaySeed = 5
)

// Tracker persists the recency list through an injected Store.
// RecordExecution and Clear are serialized by a mutex; reads are safe
// at any time.
type Tracker struct {
	store  storage.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewTracker creates a Tracker on top of store. A nil logger discards
// warnings.
func NewTracker(store storage.Store, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{store: store, logger: logger}
}

// GetRecent returns up to maxCount command IDs, most recent first.
// Corrupt or missing storage yields an empty list.
func (t *Tracker) GetRecent(ctx context.Context, maxCount int) []string {
	if maxCount <= 0 {
		return nil
	}
	ids := t.load(ctx)
	if len(ids) > maxCount {
		ids = ids[:maxCount]
	}
	return ids
}

// RecordExecution moves commandID to the head of the list, removing
// any previous occurrence, and persists the result capped at MaxStored.
func (t *Tracker) RecordExecution(ctx context.Context, commandID string) {
	if commandID == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	ids := t.load(ctx)
	next := make([]string, 0, len(ids)+1)
	next = append(next, commandID)
	for _, id := range ids {
		if id != commandID {
			next = append(next, id)
		}
	}
	if len(next) > MaxStored {
		next = next[:MaxStored]
	}
	t.save(ctx, next)
}

// Clear empties the persisted list. Idempotent.
func (t *Tracker) Clear(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Delete(ctx, slotKey); err != nil {
		t.logger.Warn("failed to clear recency list", "error", err)
	}
}

// load reads and decodes the persisted list, treating every failure as
// an empty list.
func (t *Tracker) load(ctx context.Context) []string {
	raw, ok, err := t.store.Get(ctx, slotKey)
	if err != nil {
		t.logger.Warn("failed to read recency list", "error", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		t.logger.Warn("corrupt recency list; treating as empty", "error", err)
		return nil
	}
	return ids
}

// save encodes and persists the list.
func (t *Tracker) save(ctx context.Context, ids []string) {
	raw, err := json.Marshal(ids)
	if err != nil {
		t.logger.Warn("failed to encode recency list", "error", err)
		return
	}
	if err := t.store.Set(ctx, slotKey, string(raw)); err != nil {
		t.logger.Warn("failed to persist recency list", "error", err)
	}
}
