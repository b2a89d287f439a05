package search

import (
	"testing"
)

func TestHighlight_BasicMatch(t *testing.T) {
	t.Parallel()

	ranges := Highlight("Dashboard", "dash")
	if len(ranges) != 1 {
		t.Fatalf("got %d ranges, want 1", len(ranges))
	}
	if ranges[0].Start != 0 || ranges[0].End != 4 {
		t.Errorf("got [%d, %d), want [0, 4)", ranges[0].Start, ranges[0].End)
	}
}

func TestHighlight_MultipleOccurrences(t *testing.T) {
	t.Parallel()

	ranges := Highlight("ad copy for ad groups", "ad")
	if len(ranges) != 2 {
		t.Fatalf("got %d ranges, want 2", len(ranges))
	}
}

func TestHighlight_RegexSpecialCharacters(t *testing.T) {
	t.Parallel()

	// Arbitrary user input must never produce a pattern error.
	for _, query := range []string{"(", "[", "a+b", "c*", "\\", ".*", "(?i)"} {
		// Must not panic; a match is only expected when the literal
		// text is present.
		_ = Highlight("Campaigns (active)", query)
	}

	ranges := Highlight("Campaigns (active)", "(active)")
	if len(ranges) != 1 {
		t.Fatalf("literal parentheses should match, got %d ranges", len(ranges))
	}
}

func TestHighlight_EmptyInputs(t *testing.T) {
	t.Parallel()

	if Highlight("", "query") != nil {
		t.Error("empty text should yield no ranges")
	}
	if Highlight("text", "") != nil {
		t.Error("empty query should yield no ranges")
	}
	if Highlight("text", "   ") != nil {
		t.Error("whitespace query should yield no ranges")
	}
}

func TestHighlight_RuneOffsets(t *testing.T) {
	t.Parallel()

	// Offsets are rune-based so UIs indexing runes highlight the right
	// span even after multi-byte characters.
	ranges := Highlight("café menu", "menu")
	if len(ranges) != 1 {
		t.Fatalf("got %d ranges, want 1", len(ranges))
	}
	if ranges[0].Start != 5 || ranges[0].End != 9 {
		t.Errorf("got [%d, %d), want [5, 9)", ranges[0].Start, ranges[0].End)
	}
}
