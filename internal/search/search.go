// Package search implements the palette's fuzzy search and ranking
// engine. Search is a pure function: it never mutates its inputs,
// performs no I/O, and allocates fresh results on every call, so it is
// safe to call concurrently.
package search

import (
	"sort"
	"strings"

	"github.com/runger/cmdpal/internal/command"
)

// MaxResults caps the scored result set handed back to the caller.
const MaxResults = 10

// Field combination weights. Unmatched fields are excluded from the
// weight denominator.
const (
	titleWeight       = 0.6
	descriptionWeight = 0.3
	keywordsWeight    = 0.4
)

// scoreEpsilon is the coarse-bucketing window: two scores closer than
// this are treated as tied and fall through to category priority.
const scoreEpsilon = 0.1

// Resolver resolves a command's display text before scoring. Titles and
// descriptions may be localization keys; the engine is agnostic to how
// or whether they are translated.
type Resolver interface {
	Resolve(key, fallback string) string
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(key, fallback string) string

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(key, fallback string) string {
	return f(key, fallback)
}

// IdentityResolver returns keys unchanged (fallback when empty).
var IdentityResolver = ResolverFunc(func(key, fallback string) string {
	if key == "" {
		return fallback
	}
	return key
})

// MatchedFields records which fields contributed to a result's score.
// It drives UI affordances only; ranking already folds it into Score.
type MatchedFields struct {
	Title       bool
	Description bool
	Keywords    bool
}

// Result pairs a command with its relevance score for one query.
// Results are ephemeral: recomputed on every query change, never
// cached.
type Result struct {
	Command command.Command
	Score   float64
	Matched MatchedFields
}

// Search scores the given commands against query and returns them in
// ranked order. Eligibility filtering must happen before this call.
//
// An empty (trimmed) query is a full match for every command: each
// scores 1 and the caller's ordering is preserved untouched, so a
// recency-seeded pre-order survives. A non-empty query ranks by score
// with coarse buckets, then category priority, then title length, and
// truncates to MaxResults.
func Search(commands []command.Command, query string, resolver Resolver) []Result {
	if resolver == nil {
		resolver = IdentityResolver
	}

	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]Result, 0, len(commands))
		for _, cmd := range commands {
			results = append(results, Result{
				Command: cmd,
				Score:   1,
				Matched: MatchedFields{Title: true},
			})
		}
		return results
	}

	results := make([]Result, 0, len(commands))
	for _, cmd := range commands {
		if res, ok := scoreCommand(cmd, query, resolver); ok {
			results = append(results, res)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return less(results[i], results[j], resolver)
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

// scoreCommand combines the per-field scores into one relevance score.
// A command with no matching field is excluded entirely.
func scoreCommand(cmd command.Command, query string, resolver Resolver) (Result, bool) {
	title := resolver.Resolve(cmd.Title, cmd.Title)
	description := resolver.Resolve(cmd.Description, cmd.Description)
	keywords := strings.Join(cmd.Keywords, " ")

	titleScore, titleOK := fieldScore(title, query)
	descScore, descOK := fieldScore(description, query)
	kwScore, kwOK := fieldScore(keywords, query)

	if !titleOK && !descOK && !kwOK {
		return Result{}, false
	}

	var sum, weights float64
	if titleOK {
		sum += titleScore * titleWeight
		weights += titleWeight
	}
	if descOK {
		sum += descScore * descriptionWeight
		weights += descriptionWeight
	}
	if kwOK {
		sum += kwScore * keywordsWeight
		weights += keywordsWeight
	}

	return Result{
		Command: cmd,
		Score:   sum / weights,
		Matched: MatchedFields{Title: titleOK, Description: descOK, Keywords: kwOK},
	}, true
}

// less orders two results: score first, but differences within
// scoreEpsilon are ties and resolve on category priority, then on the
// resolved title's rune length (shorter first).
func less(a, b Result, resolver Resolver) bool {
	if diff := a.Score - b.Score; diff > scoreEpsilon || diff < -scoreEpsilon {
		return a.Score > b.Score
	}

	ap, bp := a.Command.Category.Priority(), b.Command.Category.Priority()
	if ap != bp {
		return ap > bp
	}

	at := resolver.Resolve(a.Command.Title, a.Command.Title)
	bt := resolver.Resolve(b.Command.Title, b.Command.Title)
	return len([]rune(at)) < len([]rune(bt))
}
