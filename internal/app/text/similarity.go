package text

import (
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Score computes the similarity between a hypothesis and a target phrase as
// normalized Levenshtein similarity, 1 - distance/maxLen, on the normalized
// strings. The result is always in [0,1] and equals 1.0 exactly when the
// normalized strings are identical.
func Score(hypothesis, target string) float64 {
	h := Normalize(hypothesis)
	t := Normalize(target)

	if h == t {
		return 1.0
	}
	if h == "" || t == "" {
		return 0.0
	}

	dist := matchr.Levenshtein(h, t)
	maxLen := utf8.RuneCountInString(h)
	if l := utf8.RuneCountInString(t); l > maxLen {
		maxLen = l
	}

	score := 1.0 - float64(dist)/float64(maxLen)
	if score < 0 {
		return 0.0
	}
	if score > 1 {
		return 1.0
	}
	return score
}
