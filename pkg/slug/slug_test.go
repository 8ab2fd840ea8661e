package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Web Development", "web-development"},
		{"UI/UX & Graphic Design", "ui-ux-graphic-design"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"E-commerce   Solutions!", "e-commerce-solutions"},
		{"Café Ordering App", "cafe-ordering-app"},
		{"Version 2.0", "version-2-0"},
		{"日本語", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}
