package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "lowercases and dedupes",
			input:    []string{"Spanish", "spanish", "SPANISH"},
			expected: []string{"spanish"},
		},
		{
			name:     "trims, lowercases, and drops empties",
			input:    []string{"  French ", "legal", "", "  ", "FRENCH"},
			expected: []string{"french", "legal"},
		},
		{
			name:     "first occurrence wins",
			input:    []string{"medical", "Legal", "medical", "legal"},
			expected: []string{"medical", "legal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DedupeAndTrimLower(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
