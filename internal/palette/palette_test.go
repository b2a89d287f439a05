package palette

import (
	"context"
	"testing"

	"github.com/runger/cmdpal/internal/command"
	"github.com/runger/cmdpal/internal/storage"
)

func testRegistry(t *testing.T) *command.Registry {
	t.Helper()
	reg, err := command.NewRegistry([]command.Command{
		{ID: "nav-dashboard", Title: "Dashboard", Category: command.CategoryNavigation},
		{ID: "nav-campaigns", Title: "Campaigns", Category: command.CategoryNavigation, RequiresAuth: true},
		{ID: "create-offer", Title: "New offer", Category: command.CategoryCreate, RequiresAuth: true, RequiresProfile: true},
		{ID: "ai-research", Title: "Research competitors", Category: command.CategoryAI, RequiresAuth: true, CreditCost: 25},
		{ID: "settings-billing", Title: "Billing", Category: command.CategorySettings, RequiresAuth: true},
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

func allAccess() command.Context {
	return command.Context{Authenticated: true, HasProfile: true, Credits: 100}
}

func newTestPalette(t *testing.T) *Palette {
	t.Helper()
	return New(testRegistry(t), storage.NewMemoryStore(), nil, nil)
}

func TestPalette_EligibilityPrecedesScoring(t *testing.T) {
	t.Parallel()

	p := newTestPalette(t)
	ctx := context.Background()

	// A perfect title match on an auth-gated command must not surface
	// for an unauthenticated session.
	results := p.Query(ctx, "campaigns", command.Context{})
	for _, r := range results {
		if r.Command.ID == "nav-campaigns" {
			t.Error("auth-gated command surfaced without authentication")
		}
	}

	results = p.Query(ctx, "campaigns", allAccess())
	if len(results) == 0 || results[0].Command.ID != "nav-campaigns" {
		t.Errorf("authenticated query should surface nav-campaigns, got %v", results)
	}
}

func TestPalette_CreditGateBeforeEmptyQuery(t *testing.T) {
	t.Parallel()

	p := newTestPalette(t)
	ctx := context.Background()

	ec := allAccess()
	ec.Credits = 10
	for _, r := range p.Query(ctx, "", ec) {
		if r.Command.ID == "ai-research" {
			t.Error("command costing 25 credits surfaced with a 10-credit budget")
		}
	}
}

func TestPalette_EmptyQueryPreservesRegistryOrder(t *testing.T) {
	t.Parallel()

	p := newTestPalette(t)
	ctx := context.Background()

	results := p.Query(ctx, "", allAccess())
	if len(results) != 5 {
		t.Fatalf("got %d results, want all 5", len(results))
	}
	want := []string{"nav-dashboard", "nav-campaigns", "create-offer", "ai-research", "settings-billing"}
	for i, r := range results {
		if r.Command.ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, r.Command.ID, want[i])
		}
		if r.Score != 1 {
			t.Errorf("empty query score = %v, want 1", r.Score)
		}
	}
}

func TestPalette_EmptyQuerySeededByRecency(t *testing.T) {
	t.Parallel()

	p := newTestPalette(t)
	ctx := context.Background()

	if _, err := p.Record(ctx, "settings-billing"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if _, err := p.Record(ctx, "ai-research"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	results := p.Query(ctx, "", allAccess())
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	// Most recent first, then the rest in registry order.
	want := []string{"ai-research", "settings-billing", "nav-dashboard", "nav-campaigns", "create-offer"}
	for i, r := range results {
		if r.Command.ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, r.Command.ID, want[i])
		}
	}
}

func TestPalette_RecencySeedRespectsEligibility(t *testing.T) {
	t.Parallel()

	p := newTestPalette(t)
	ctx := context.Background()

	if _, err := p.Record(ctx, "ai-research"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	// The recency head is no longer affordable; it must not be seeded.
	ec := allAccess()
	ec.Credits = 0
	results := p.Query(ctx, "", ec)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].Command.ID == "ai-research" {
		t.Error("ineligible recency entry must not lead the seed order")
	}
}

func TestPalette_RecordUnknownCommand(t *testing.T) {
	t.Parallel()

	p := newTestPalette(t)
	if _, err := p.Record(context.Background(), "ghost"); err == nil {
		t.Error("recording an unknown command should error")
	}
}

func TestPalette_RecentDropsUnknownIDs(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	ctx := context.Background()
	// Simulate a previous session that recorded a command later removed
	// from the catalog.
	if err := store.Set(ctx, "recent_commands", `["removed-cmd","nav-dashboard"]`); err != nil {
		t.Fatal(err)
	}

	p := New(testRegistry(t), store, nil, nil)
	recent := p.Recent(ctx, 5)
	if len(recent) != 1 || recent[0].ID != "nav-dashboard" {
		t.Errorf("got %v, want only nav-dashboard", recent)
	}
}

func TestPalette_RecordAppendsExecutionLog(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	p := New(testRegistry(t), store, nil, nil)
	ctx := context.Background()

	cmd, err := p.Record(ctx, "nav-dashboard")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if cmd.Title != "Dashboard" {
		t.Errorf("Record() returned %q, want Dashboard", cmd.Title)
	}

	counts, err := store.CountExecutions(ctx)
	if err != nil {
		t.Fatalf("CountExecutions() error = %v", err)
	}
	if counts["nav-dashboard"] != 1 {
		t.Errorf("execution log counts = %v, want nav-dashboard:1", counts)
	}
}

func TestPalette_ClearRecent(t *testing.T) {
	t.Parallel()

	p := newTestPalette(t)
	ctx := context.Background()

	if _, err := p.Record(ctx, "nav-dashboard"); err != nil {
		t.Fatal(err)
	}
	p.ClearRecent(ctx)
	if recent := p.Recent(ctx, 5); len(recent) != 0 {
		t.Errorf("got %v after clear, want empty", recent)
	}
}

func TestPalette_QueryRanksEligibleSet(t *testing.T) {
	t.Parallel()

	p := newTestPalette(t)
	ctx := context.Background()

	results := p.Query(ctx, "research", allAccess())
	if len(results) != 1 || results[0].Command.ID != "ai-research" {
		t.Fatalf("got %v, want only ai-research", results)
	}
	if results[0].Score <= 0 || results[0].Score > 1 {
		t.Errorf("score = %v, want in (0, 1]", results[0].Score)
	}
}
