package engine

import "sync"

// StandaloneColors is the integer palette handed out by the standalone
// climbandwin server (0xRRGGBB values fed straight into material colors).
var StandaloneColors = []any{
	0xff0000, // red
	0x00ff00, // green
	0x0000ff, // blue
	0xffff00, // yellow
	0xff00ff, // magenta
	0x00ffff, // cyan
	0xff8800, // orange
	0x8800ff, // purple
	0x008800, // dark green
	0x880000, // dark red
	0x000088, // dark blue
	0x888800, // dark yellow
}

// CombinedColors is the hex-string palette the combined server hands to
// climbandwin players.
var CombinedColors = []any{
	"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ff00ff", "#00ffff",
	"#ff8800", "#8800ff", "#00ff88", "#ff0088", "#88ff00", "#0088ff",
}

// Palette assigns colors round-robin: the Nth connection in a scope gets
// colors[(N-1) % len(colors)]. Assignment is deterministic, not randomized,
// and colors are reused once the palette wraps.
type Palette struct {
	mu     sync.Mutex
	colors []any
	next   int
}

// NewPalette creates a palette over the given ordered color set.
func NewPalette(colors []any) *Palette {
	return &Palette{colors: colors}
}

// Next returns the next color in the cycle. A nil or empty palette yields
// nil; pengstrike players carry no color.
func (p *Palette) Next() any {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.colors) == 0 {
		return nil
	}
	c := p.colors[p.next%len(p.colors)]
	p.next++
	return c
}
