// Package textproc turns raw extracted text into normalized word tokens
// and scores them by learning value.
package textproc

import (
	"iter"
	"regexp"
	"strings"
	"unicode"
)

// minTokenLen is the minimum number of letters a token must carry.
// Single letters ("a", "I") are noise; two-letter words ("is", "we") count.
const minTokenLen = 2

var (
	urlRE = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagRE = regexp.MustCompile(`<[^>]*>`)
)

// Tokenize returns a lazy, restartable sequence of normalized word tokens
// from raw text. Text is lowercased; tokens are runs of letters with
// internal apostrophes preserved; numerals, punctuation, and tokens shorter
// than two letters are discarded. Markup remnants (URLs, HTML tags) are
// stripped first. Empty input yields an empty sequence.
func Tokenize(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if strings.TrimSpace(text) == "" {
			return
		}

		cleaned := tagRE.ReplaceAllString(urlRE.ReplaceAllString(text, " "), " ")
		cleaned = strings.ToLower(cleaned)

		var b strings.Builder
		letters := 0

		flush := func() bool {
			defer func() {
				b.Reset()
				letters = 0
			}()
			if letters < minTokenLen {
				return true
			}
			// Apostrophes are only kept when internal.
			tok := strings.Trim(b.String(), "'")
			return yield(tok)
		}

		for _, r := range cleaned {
			switch {
			case unicode.IsLetter(r):
				b.WriteRune(r)
				letters++
			case r == '\'' && b.Len() > 0:
				b.WriteRune(r)
			default:
				if b.Len() > 0 && !flush() {
					return
				}
			}
		}
		if b.Len() > 0 {
			flush()
		}
	}
}

// Frequencies tokenizes raw text and returns the word → count multiset for
// the batch. Deduplication happens here, not in Tokenize.
func Frequencies(text string) map[string]int {
	counts := make(map[string]int)
	for tok := range Tokenize(text) {
		counts[tok]++
	}
	return counts
}

// TotalCount sums all batch frequencies.
func TotalCount(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
