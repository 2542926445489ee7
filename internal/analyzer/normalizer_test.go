package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "already clean",
			input: "I need a content calendar.",
			want:  "I need a content calendar.",
		},
		{
			name:  "whitespace runs collapse to single spaces",
			input: "Hello   world!\n\n\nThis  has   extra    spaces.",
			want:  "Hello world! This has extra spaces.",
		},
		{
			name:  "disallowed characters stripped",
			input: "I want a kawaii ✨ planner @ home #goals",
			want:  "I want a kawaii planner home goals",
		},
		{
			name:  "allowed punctuation kept",
			input: "Wait... really?! Yes: items; (a) - (b)",
			want:  "Wait... really?! Yes: items; (a) - (b)",
		},
		{
			name:  "leading and trailing whitespace trimmed",
			input: "  \t hello \n ",
			want:  "hello",
		},
		{
			name:  "carriage returns dropped",
			input: "line one\r\nline two",
			want:  "line one line two",
		},
		{
			name:  "tabs collapse",
			input: "a\t\tb",
			want:  "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello   world!\n\n\nThis  has   extra    spaces.",
		"I want a kawaii ✨ planner",
		"plain text",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}
