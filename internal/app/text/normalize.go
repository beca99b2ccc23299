// Package text implements hypothesis/target normalization and the
// similarity score used to rank transcriptions for review.
package text

import (
	"strings"
	"unicode"
)

// Normalize lowercases s, removes everything except letters, digits and
// spaces, collapses whitespace runs to single spaces and trims the ends.
// Unicode punctuation (curly quotes etc.) is handled by exclusion.
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
