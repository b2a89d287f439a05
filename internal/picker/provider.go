package picker

import (
	"context"

	"github.com/runger/cmdpal/internal/command"
	"github.com/runger/cmdpal/internal/palette"
)

// Item is one renderable palette row.
type Item struct {
	ID          string
	Title       string
	Description string
	Category    command.Category
	Score       float64
}

// Request describes what items the picker wants from a Provider.
type Request struct {
	RequestID uint64 // Monotonically increasing, for stale response detection
	Query     string
	Limit     int
}

// Response carries items back from a Provider.
type Response struct {
	RequestID uint64 // Must match Request.RequestID to be accepted
	Items     []Item
}

// Provider supplies items to the picker. Implementations might query
// the in-process palette or any other source.
type Provider interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

// PaletteProvider adapts a Palette to the Provider interface.
type PaletteProvider struct {
	Palette *palette.Palette
	Context command.Context
}

// Fetch runs the query through the palette and converts results to
// items.
func (p *PaletteProvider) Fetch(ctx context.Context, req Request) (Response, error) {
	results := p.Palette.Query(ctx, req.Query, p.Context)
	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}

	items := make([]Item, 0, len(results))
	for _, res := range results {
		items = append(items, Item{
			ID:          res.Command.ID,
			Title:       res.Command.Title,
			Description: res.Command.Description,
			Category:    res.Command.Category,
			Score:       res.Score,
		})
	}
	return Response{RequestID: req.RequestID, Items: items}, nil
}
