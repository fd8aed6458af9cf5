package tonesplit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		in, highlights, shadows string
	}{
		{"tank.png", "tank_highlights.png", "tank_shadows.png"},
		{"assets/sprites/tank-t1.png", "assets/sprites/tank-t1_highlights.png", "assets/sprites/tank-t1_shadows.png"},
		{"a.b/c.d.gif", "a.b/c.d_highlights.gif", "a.b/c.d_shadows.gif"},
		{"noext", "noext_highlights", "noext_shadows"},
		{".png", ".png_highlights", ".png_shadows"},
		{"sprites/..png", "sprites/..png_highlights", "sprites/..png_shadows"},
		{"sprites/.tank.png", "sprites/.tank_highlights.png", "sprites/.tank_shadows.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.highlights, HighlightsPath(tt.in))
		assert.Equal(t, tt.shadows, ShadowsPath(tt.in))
	}
}
