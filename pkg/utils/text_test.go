package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses whitespace", input: "a  b\n\tc", want: "a b c"},
		{name: "trims edges", input: "  hello  ", want: "hello"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "keeps word chars and hyphens", input: "abc_DEF-123", want: "abc_DEF-123"},
		{name: "replaces punctuation", input: "a.b/c:d", want: "a_b_c_d"},
		{name: "replaces spaces", input: "a b", want: "a_b"},
		{name: "replaces non-ascii", input: "café", want: "caf_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "abc", TruncateText("abc", 5))
	assert.Equal(t, "abcde", TruncateText("abcdefgh", 5))
	assert.Equal(t, "", TruncateText("", 5))
}
