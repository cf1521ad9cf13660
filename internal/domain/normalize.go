package domain

import "strings"

// NormalizeWord prepares a word for storage and comparison: trims
// surrounding whitespace and converts to lowercase. Apostrophes are
// preserved (contractions are valid tokens).
func NormalizeWord(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
