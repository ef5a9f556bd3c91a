// Package fuzzy suggests the closest known name for a mistyped one.
package fuzzy

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MinSimilarity is the lowest similarity a candidate needs to be suggested.
const MinSimilarity = 0.5

// Similarity returns a score in [0, 1] derived from the edit distance of a
// and b, where 1 means equal.
func Similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := max(len(a), len(b))
	return 1.0 - float64(dist)/float64(maxLen)
}

// Closest returns the candidate most similar to name, ignoring case, or ""
// when none reaches MinSimilarity. Ties go to the earlier candidate.
func Closest(name string, candidates []string) string {
	needle := strings.ToLower(name)
	best := ""
	bestScore := MinSimilarity
	for _, c := range candidates {
		score := Similarity(needle, strings.ToLower(c))
		if score > bestScore || (score == bestScore && best == "") {
			best = c
			bestScore = score
		}
	}
	return best
}
