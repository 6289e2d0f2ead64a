package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteRoundRobin(t *testing.T) {
	p := NewPalette([]any{"#ff0000", "#00ff00", "#0000ff"})

	assert.Equal(t, "#ff0000", p.Next())
	assert.Equal(t, "#00ff00", p.Next())
	assert.Equal(t, "#0000ff", p.Next())
	// wraps back to the start
	assert.Equal(t, "#ff0000", p.Next())
	assert.Equal(t, "#00ff00", p.Next())
}

func TestPaletteIntColors(t *testing.T) {
	p := NewPalette(StandaloneColors)

	assert.Equal(t, 0xff0000, p.Next())
	assert.Equal(t, 0x00ff00, p.Next())

	for i := 2; i < len(StandaloneColors); i++ {
		p.Next()
	}
	assert.Equal(t, 0xff0000, p.Next())
}

func TestPaletteNilAndEmpty(t *testing.T) {
	var p *Palette
	assert.Nil(t, p.Next())

	empty := NewPalette(nil)
	assert.Nil(t, empty.Next())
	assert.Nil(t, empty.Next())
}

func TestPaletteSetsDistinct(t *testing.T) {
	assert.Len(t, StandaloneColors, 12)
	assert.Len(t, CombinedColors, 12)

	seen := make(map[any]bool)
	for _, c := range CombinedColors {
		assert.False(t, seen[c], "duplicate color %v", c)
		seen[c] = true
	}
}
