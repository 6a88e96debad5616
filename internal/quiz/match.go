package quiz

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MatchLabel resolves typed text to one of labels. A case-insensitive exact
// match wins; otherwise the single closest label within a length-based edit
// distance limit is returned. Ties between equally close labels are rejected.
func MatchLabel(typed string, labels []string) (string, bool) {
	typed = strings.ToLower(strings.TrimSpace(typed))
	if typed == "" {
		return "", false
	}

	best := ""
	bestDist := -1
	tie := false
	for _, label := range labels {
		cand := strings.ToLower(label)
		if cand == typed {
			return label, true
		}
		dist := levenshtein.ComputeDistance(typed, cand)
		if dist > distanceLimit(len(cand)) {
			continue
		}
		switch {
		case bestDist < 0 || dist < bestDist:
			best, bestDist, tie = label, dist, false
		case dist == bestDist && cand != strings.ToLower(best):
			tie = true
		}
	}
	if bestDist < 0 || tie {
		return "", false
	}
	return best, true
}

// distanceLimit is the largest edit distance accepted for a label of n bytes.
func distanceLimit(n int) int {
	switch {
	case n <= 3:
		return 0
	case n <= 5:
		return 1
	case n <= 9:
		return 2
	default:
		return 3
	}
}
