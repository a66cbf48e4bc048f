package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{name: "Empty", input: "", max: 10, expected: ""},
		{name: "Short", input: "hello", max: 10, expected: "hello"},
		{name: "Exact", input: "hello", max: 5, expected: "hello"},
		{name: "Cut", input: "hello world", max: 5, expected: "hello..."},
		{name: "Multibyte", input: "héllo wörld", max: 4, expected: "héll..."},
		{name: "Zero max", input: "hello", max: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Excerpt(tt.input, tt.max))
		})
	}
}
