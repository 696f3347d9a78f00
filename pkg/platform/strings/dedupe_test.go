package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil stays nil", input: nil, expected: nil},
		{name: "empty stays empty", input: []string{}, expected: []string{}},
		{
			name:     "transport profiles in first-use order",
			input:    []string{"peppol-transport-as4-v2_0", "busdox-transport-as2-ver1p0", "peppol-transport-as4-v2_0"},
			expected: []string{"peppol-transport-as4-v2_0", "busdox-transport-as2-ver1p0"},
		},
		{
			name:     "brokers with padding and blanks",
			input:    []string{" kafka-1:9092", "", "kafka-2:9092 ", "  ", "kafka-1:9092"},
			expected: []string{"kafka-1:9092", "kafka-2:9092"},
		},
		{
			name:     "only blanks",
			input:    []string{" ", "\t"},
			expected: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndTrim_DoesNotAlias(t *testing.T) {
	input := []string{"b", "a", "b"}
	out := DedupeAndTrim(input)
	out[0] = "changed"
	assert.Equal(t, []string{"b", "a", "b"}, input)
}
