package search

import "strings"

// Scoring constants. The substring path rewards short, prefix-anchored
// queries against short fields; the fuzzy path discounts scattered
// subsequence matches and drops anything below the match threshold.
const (
	substringBase  = 0.8
	prefixBonus    = 0.2
	consecWeight   = 0.3
	lengthWeight   = 0.2
	fuzzyScale     = 0.7
	matchThreshold = 0.3
)

// fieldScore computes the relevance of query against a single field.
// Both are compared case-insensitively; lengths are rune counts.
// The second return reports whether the field matched at all.
func fieldScore(field, query string) (float64, bool) {
	if field == "" || query == "" {
		return 0, false
	}

	f := strings.ToLower(field)
	q := strings.ToLower(query)
	fLen := float64(len([]rune(f)))
	qLen := float64(len([]rune(q)))

	// Exact substring match wins outright.
	if idx := strings.Index(f, q); idx >= 0 {
		score := substringBase + qLen/fLen
		if idx == 0 {
			score += prefixBonus
		}
		if score > 1 {
			score = 1
		}
		return score, true
	}

	return fuzzyScore(f, q, fLen, qLen)
}

// fuzzyScore walks the field left to right, greedily consuming query
// runes in order. The field matches only if every query rune is
// consumed as a subsequence; the longest run of consecutive hits adds
// a bonus and long fields pay a small penalty.
func fuzzyScore(f, q string, fLen, qLen float64) (float64, bool) {
	qr := []rune(q)
	matched := 0
	consecutive := 0
	maxConsecutive := 0

	for _, ch := range f {
		if matched < len(qr) && qr[matched] == ch {
			matched++
			consecutive++
			if consecutive > maxConsecutive {
				maxConsecutive = consecutive
			}
		} else {
			consecutive = 0
		}
	}

	if matched < len(qr) {
		return 0, false
	}

	// matchRatio is 1.0 whenever the walk succeeds, since a partial
	// consume already returned above. Kept in the formula so the score
	// reads as the ratio-based blend it is.
	matchRatio := float64(matched) / qLen
	consecutiveBonus := float64(maxConsecutive) / qLen * consecWeight
	lengthPenalty := 0.0
	if fLen > qLen {
		lengthPenalty = (fLen - qLen) / fLen * lengthWeight
	}

	raw := (matchRatio + consecutiveBonus - lengthPenalty) * fuzzyScale
	if raw < 0 {
		raw = 0
	}
	if raw <= matchThreshold {
		return 0, false
	}
	return raw, true
}
