package glyph

import "github.com/whiteStainX/ncmatrix/internal/engine"

// Palette samples display glyphs uniformly from a fixed set.
type Palette struct {
	set []rune
}

// NewPalette copies set. An empty set yields a palette that only returns spaces.
func NewPalette(set []rune) *Palette {
	return &Palette{set: append([]rune(nil), set...)}
}

// Pick returns a random glyph, or ' ' when the set is empty.
func (p *Palette) Pick(r engine.Random) rune {
	if len(p.set) == 0 {
		return ' '
	}
	return p.set[r.IntN(len(p.set))]
}

func (p *Palette) Len() int { return len(p.set) }

// Runes returns a copy of the set.
func (p *Palette) Runes() []rune {
	return append([]rune(nil), p.set...)
}
