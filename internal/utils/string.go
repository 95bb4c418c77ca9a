package utils

import (
	"context"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// HasPrefixCaseInsensitive returns true if s starts with prefix, letter case is ignored.
// An empty prefix matches any string.
func HasPrefixCaseInsensitive(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}

// FindClosestString returns the candidate with the smallest edit distance to s, ok is false if
// no candidate is at most maxDifferences edits away or if ctx is done.
func FindClosestString(ctx context.Context, candidates []string, s string, maxDifferences int) (closest string, distance int, ok bool) {
	distance = -1

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return "", 0, false
		}

		d := levenshtein.DistanceForStrings([]rune(candidate), []rune(s), levenshtein.DefaultOptionsWithSub)
		if d <= maxDifferences && (distance < 0 || d < distance) {
			closest = candidate
			distance = d
			ok = true
		}
	}

	if !ok {
		return "", 0, false
	}
	return
}
