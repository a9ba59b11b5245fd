// Package match reconciles externally sourced game titles against catalog
// search results using normalized-name comparison and Levenshtein scoring.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize produces the canonical comparison form of a title.
// Lower-cased, stripped to ASCII letters/digits/spaces, whitespace collapsed
// to single spaces, trimmed. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// QueryTitle prepares a title for catalog search queries.
// Unlike Normalize, it folds accented characters to their ASCII base
// ("Pokémon" -> "Pokemon") and preserves case, which gives better search
// results. Never use it for comparison; that is what Normalize is for.
func QueryTitle(title string) string {
	s := removeAccents(title)
	s = strings.ReplaceAll(s, "&", "and")
	return strings.Join(strings.Fields(s), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
