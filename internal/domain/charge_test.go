package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFrequency(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "3 days passes through",
			input:    Frequency3Days,
			expected: Frequency3Days,
		},
		{
			name:     "7 days passes through",
			input:    Frequency7Days,
			expected: Frequency7Days,
		},
		{
			name:     "10 days passes through",
			input:    Frequency10Days,
			expected: Frequency10Days,
		},
		{
			name:     "weekly maps to 7 days",
			input:    FrequencyWeekly,
			expected: Frequency7Days,
		},
		{
			name:     "once passes through as default",
			input:    FrequencyOnce,
			expected: FrequencyOnce,
		},
		{
			name:     "unknown label falls back to once",
			input:    "biweekly",
			expected: FrequencyOnce,
		},
		{
			name:     "empty string falls back to once",
			input:    "",
			expected: FrequencyOnce,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeFrequency(tt.input))
		})
	}
}
