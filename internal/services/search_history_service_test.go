// internal/services/search_history_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NewJeans", "newjeans"},
		{"  Stray Kids  ", "stray kids"},
		{"ALBUM", "album"},
		{"\tphotocard\n", "photocard"},
		{"stray  kids   album", "stray kids album"},
		{"NewJeans\t\nGet Up", "newjeans get up"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeQuery(tt.input), "input=%q", tt.input)
	}
}

func TestNormalizeQueryCollapsesVariants(t *testing.T) {
	// Every casing and padding variant of the same text must land on the
	// same history row key.
	variants := []string{"BTS Photocard", "bts photocard", "  BTS PHOTOCARD  ", "BTS  Photocard"}
	for _, v := range variants {
		assert.Equal(t, "bts photocard", NormalizeQuery(v))
	}
}
