package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		ok       bool
	}{
		{
			name:     "bare object",
			content:  `{"category": "Food"}`,
			expected: `{"category": "Food"}`,
			ok:       true,
		},
		{
			name:     "markdown fence",
			content:  "```json\n{\"category\": \"Transport\"}\n```",
			expected: `{"category": "Transport"}`,
			ok:       true,
		},
		{
			name:     "surrounding prose",
			content:  `Sure! Here is the answer: {"category": "Health"} Hope that helps.`,
			expected: `{"category": "Health"}`,
			ok:       true,
		},
		{
			name:     "nested object",
			content:  `{"predictions": {"2024-07": 1250.5}, "explanation": "flat trend"}`,
			expected: `{"predictions": {"2024-07": 1250.5}, "explanation": "flat trend"}`,
			ok:       true,
		},
		{
			name:     "braces inside string literals",
			content:  `{"explanation": "uses {curly} braces and a \" quote", "x": 1}`,
			expected: `{"explanation": "uses {curly} braces and a \" quote", "x": 1}`,
			ok:       true,
		},
		{
			name:    "no object at all",
			content: "Food",
			ok:      false,
		},
		{
			name:    "unbalanced object",
			content: `{"category": "Food"`,
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
