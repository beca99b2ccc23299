package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase_and_trim",
			input:    "  Open The Door  ",
			expected: "open the door",
		},
		{
			name:     "strips_ascii_punctuation",
			input:    "Open, the door!",
			expected: "open the door",
		},
		{
			name:     "strips_unicode_punctuation",
			input:    "“open” the ‘door’…",
			expected: "open the door",
		},
		{
			name:     "collapses_whitespace",
			input:    "open\tthe\n door",
			expected: "open the door",
		},
		{
			name:     "keeps_digits",
			input:    "trial 42 done",
			expected: "trial 42 done",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "punctuation_only",
			input:    "?!...",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  Open The Door!  ",
		"already normalized",
		"",
		"MiXeD\tCase,   and; punct.",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalizing twice must be a no-op for %q", input)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		hypothesis string
		target     string
		expected   float64
	}{
		{
			name:       "exact_match",
			hypothesis: "open the door",
			target:     "open the door",
			expected:   1.0,
		},
		{
			name:       "match_after_normalization",
			hypothesis: " Open, the door! ",
			target:     "open the door",
			expected:   1.0,
		},
		{
			name:       "empty_hypothesis",
			hypothesis: "",
			target:     "open the door",
			expected:   0.0,
		},
		{
			name:       "empty_target",
			hypothesis: "open the door",
			target:     "",
			expected:   0.0,
		},
		{
			name:       "both_empty",
			hypothesis: "",
			target:     "",
			expected:   1.0,
		},
		{
			name:       "completely_different_short_vs_long",
			hypothesis: "z",
			target:     "abcdefghijklmnop",
			expected:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Score(tt.hypothesis, tt.target), 1e-9)
		})
	}
}

func TestScore_Range(t *testing.T) {
	pairs := [][2]string{
		{"open door", "open the door"},
		{"close the window", "open the door"},
		{"opn the dor", "open the door"},
		{"completely unrelated text here", "open the door"},
	}

	for _, p := range pairs {
		score := Score(p[0], p[1])
		assert.GreaterOrEqual(t, score, 0.0, "%q vs %q", p[0], p[1])
		assert.LessOrEqual(t, score, 1.0, "%q vs %q", p[0], p[1])
	}
}

func TestScore_PartialMatchIsStrictlyBetween(t *testing.T) {
	// "open door" needs fewer edits than the target length, so the score
	// must land strictly between 0 and 1.
	score := Score("open door", "open the door")
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)
}

func TestScore_OneIffNormalizedEqual(t *testing.T) {
	tests := []struct {
		hypothesis string
		target     string
		wantOne    bool
	}{
		{"Open The Door!", "open the door", true},
		{"open the door", "open the doors", false},
		{"open door", "open the door", false},
	}

	for _, tt := range tests {
		score := Score(tt.hypothesis, tt.target)
		if tt.wantOne {
			assert.Equal(t, 1.0, score)
		} else {
			assert.Less(t, score, 1.0)
		}
	}
}
