package recency

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/runger/cmdpal/internal/storage"
)

func TestTracker_RecordAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker(storage.NewMemoryStore(), nil)

	tr.RecordExecution(ctx, "a")
	tr.RecordExecution(ctx, "b")
	tr.RecordExecution(ctx, "c")

	got := tr.GetRecent(ctx, 5)
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestTracker_Deduplicates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker(storage.NewMemoryStore(), nil)

	tr.RecordExecution(ctx, "a")
	tr.RecordExecution(ctx, "b")
	tr.RecordExecution(ctx, "a")

	got := tr.GetRecent(ctx, 5)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestTracker_RepeatedRecordIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker(storage.NewMemoryStore(), nil)

	tr.RecordExecution(ctx, "x")
	tr.RecordExecution(ctx, "x")

	got := tr.GetRecent(ctx, 5)
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("got %v, want exactly one x at the head", got)
	}
}

func TestTracker_CapsStoredEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker(storage.NewMemoryStore(), nil)

	for i := 0; i < MaxStored+7; i++ {
		tr.RecordExecution(ctx, fmt.Sprintf("cmd-%d", i))
	}

	got := tr.GetRecent(ctx, MaxStored+7)
	if len(got) != MaxStored {
		t.Fatalf("got %d entries, want %d", len(got), MaxStored)
	}
	// Newest first; the oldest entries fell off.
	if got[0] != fmt.Sprintf("cmd-%d", MaxStored+6) {
		t.Errorf("head = %s, want newest", got[0])
	}
}

func TestTracker_GetRecentTruncates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker(storage.NewMemoryStore(), nil)
	for _, id := range []string{"a", "b", "c", "d"} {
		tr.RecordExecution(ctx, id)
	}

	if got := tr.GetRecent(ctx, 2); len(got) != 2 {
		t.Errorf("got %d entries, want 2", len(got))
	}
	if got := tr.GetRecent(ctx, 0); got != nil {
		t.Errorf("maxCount 0 should yield nil, got %v", got)
	}
}

func TestTracker_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker(storage.NewMemoryStore(), nil)
	tr.RecordExecution(ctx, "a")

	tr.Clear(ctx)
	if got := tr.GetRecent(ctx, 5); len(got) != 0 {
		t.Errorf("got %v after clear, want empty", got)
	}

	// Clearing an empty list is fine.
	tr.Clear(ctx)
}

func TestTracker_CorruptSlotTreatedAsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	if err := store.Set(ctx, "recent_commands", "{not json"); err != nil {
		t.Fatal(err)
	}

	tr := NewTracker(store, nil)
	if got := tr.GetRecent(ctx, 5); len(got) != 0 {
		t.Errorf("corrupt slot should read as empty, got %v", got)
	}

	// Recording over a corrupt slot starts a fresh list.
	tr.RecordExecution(ctx, "a")
	if got := tr.GetRecent(ctx, 5); len(got) != 1 || got[0] != "a" {
		t.Errorf("got %v, want [a]", got)
	}
}

// failingStore errors on every operation to exercise degradation.
type failingStore struct {
	storage.Store
}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingStore) Set(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("disk on fire")
}

func TestTracker_StorageFailureDegradesToEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := NewTracker(failingStore{}, nil)

	// None of these may panic or propagate an error.
	tr.RecordExecution(ctx, "a")
	tr.Clear(ctx)
	if got := tr.GetRecent(ctx, 5); len(got) != 0 {
		t.Errorf("failing storage should yield empty recency, got %v", got)
	}
}
