package match

import "github.com/hbollon/go-edlib"

// Similarity returns the Levenshtein similarity of two strings in [0.0, 1.0],
// computed as (maxLen - editDistance) / maxLen over rune lengths.
// Two empty strings are identical (1.0).
func Similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	dist := edlib.LevenshteinDistance(a, b)
	return float64(maxLen-dist) / float64(maxLen)
}
