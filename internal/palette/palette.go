// Package palette wires the command registry, eligibility filter,
// search engine, and recency tracker into the palette surface callers
// render.
package palette

import (
	"context"
	"log/slog"
	"strings"

	"github.com/runger/cmdpal/internal/command"
	"github.com/runger/cmdpal/internal/recency"
	"github.com/runger/cmdpal/internal/search"
	"github.com/runger/cmdpal/internal/storage"
)

// Palette answers queries against a fixed registry. Query allocates
// fresh result slices and never mutates shared state, so it is safe
// for concurrent use; Record serializes through the tracker.
type Palette struct {
	registry *command.Registry
	store    storage.Store
	tracker  *recency.Tracker
	resolver search.Resolver
	logger   *slog.Logger
}

// New creates a Palette. resolver may be nil for identity resolution;
// logger may be nil to discard warnings.
func New(registry *command.Registry, store storage.Store, resolver search.Resolver, logger *slog.Logger) *Palette {
	if resolver == nil {
		resolver = search.IdentityResolver
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Palette{
		registry: registry,
		store:    store,
		tracker:  recency.NewTracker(store, logger),
		resolver: resolver,
		logger:   logger,
	}
}

// Registry returns the palette's command registry.
func (p *Palette) Registry() *command.Registry {
	return p.registry
}

// Query filters the registry by eligibility and ranks the survivors
// against query. An empty query returns every eligible command, seeded
// by the recency list and otherwise in registry order.
func (p *Palette) Query(ctx context.Context, query string, ec command.Context) []search.Result {
	eligible := command.Filter(p.registry.All(), ec)

	if strings.TrimSpace(query) == "" {
		return search.Search(p.seedOrder(ctx, eligible), "", p.resolver)
	}
	return search.Search(eligible, query, p.resolver)
}

// Record notes that the user executed the command: the recency list is
// updated and an entry is appended to the execution log. Returns the
// command so callers can dispatch its action.
func (p *Palette) Record(ctx context.Context, commandID string) (command.Command, error) {
	cmd, err := p.registry.Get(commandID)
	if err != nil {
		return command.Command{}, err
	}

	p.tracker.RecordExecution(ctx, commandID)
	if err := p.store.AppendExecution(ctx, &storage.Execution{CommandID: commandID}); err != nil {
		// The log is best-effort; recency already captured the use.
		p.logger.Warn("failed to log execution", "command_id", commandID, "error", err)
	}
	return cmd, nil
}

// Recent returns the recently executed commands, most recent first.
// IDs no longer present in the registry are silently dropped.
func (p *Palette) Recent(ctx context.Context, maxCount int) []command.Command {
	ids := p.tracker.GetRecent(ctx, maxCount)
	out := make([]command.Command, 0, len(ids))
	for _, id := range ids {
		if cmd, err := p.registry.Get(id); err == nil {
			out = append(out, cmd)
		}
	}
	return out
}

// ClearRecent empties the recency list.
func (p *Palette) ClearRecent(ctx context.Context) {
	p.tracker.Clear(ctx)
}

// seedOrder places recency-seeded commands first, then the remaining
// eligible commands in registry order.
func (p *Palette) seedOrder(ctx context.Context, eligible []command.Command) []command.Command {
	recent := p.Recent(ctx, recency.DisplaySeed)
	if len(recent) == 0 {
		return eligible
	}

	eligibleByID := make(map[string]bool, len(eligible))
	for _, cmd := range eligible {
		eligibleByID[cmd.ID] = true
	}

	seeded := make([]command.Command, 0, len(eligible))
	seen := make(map[string]bool, len(recent))
	for _, cmd := range recent {
		if eligibleByID[cmd.ID] && !seen[cmd.ID] {
			seen[cmd.ID] = true
			seeded = append(seeded, cmd)
		}
	}
	for _, cmd := range eligible {
		if !seen[cmd.ID] {
			seeded = append(seeded, cmd)
		}
	}
	return seeded
}
