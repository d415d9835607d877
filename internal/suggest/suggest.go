// Package suggest produces "did you mean" candidates for error messages,
// used when a type name or iterator token is not found in a registry.
package suggest

import "github.com/lithammer/fuzzysearch/fuzzy"

// Closest returns the best fuzzy match for target among candidates, and
// whether one was found close enough to be worth surfacing. An empty
// candidate list, or no candidate scoring above the relevance threshold,
// reports ok=false.
func Closest(target string, candidates []string) (best string, ok bool) {
	if target == "" || len(candidates) == 0 {
		return "", false
	}

	// Every candidate is scored by Levenshtein distance (a transposed typo
	// such as "itn32" still scores 2 against "int32"); the lowest distance
	// wins, the earliest candidate on a tie. Distances beyond roughly half
	// the target's length are too weak to be a useful suggestion.
	bestDist := -1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(target, c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist > (len(target)+1)/2+1 {
		return "", false
	}
	return best, true
}
