package search

import (
	"regexp"
	"strings"
)

// Range marks a half-open [Start, End) rune span inside a field where
// the query matched, for UI emphasis.
type Range struct {
	Start int
	End   int
}

// Highlight locates case-insensitive occurrences of query inside text.
// The query is regexp-escaped first: user input routinely contains
// characters like "(" or "[" and must never produce a pattern error.
// Returns nil when the query is empty or absent.
func Highlight(text, query string) []Range {
	query = strings.TrimSpace(query)
	if query == "" || text == "" {
		return nil
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		// QuoteMeta makes this unreachable for any input; degrade to
		// no highlight rather than surfacing an error.
		return nil
	}

	var ranges []Range
	for _, loc := range re.FindAllStringIndex(text, -1) {
		ranges = append(ranges, Range{
			Start: len([]rune(text[:loc[0]])),
			End:   len([]rune(text[:loc[1]])),
		})
	}
	return ranges
}
