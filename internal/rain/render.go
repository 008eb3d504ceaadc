package rain

import (
	"math"

	"github.com/whiteStainX/ncmatrix/internal/engine"
)

// drawTrail draws s from its lead upward. Rows outside the surface are
// skipped; columns wrap.
func (f *field) drawTrail(surface engine.Surface, s *Stream, rows, cols int) {
	n := min(s.Length, len(s.Glyphs))
	head := int(math.Floor(s.Y))
	for i := 0; i < n; i++ {
		row := head - i
		if row < 0 || row >= rows {
			continue
		}
		col := wrapInt(int(math.Round(s.X-float64(i)*f.slant)), cols)
		if i == 0 && s.HasLead {
			surface.SetStyle(f.lead, true)
		} else {
			surface.SetStyle(Fade(f.tail, i, s.Length), false)
		}
		surface.Put(row, col, s.Glyphs[i])
	}
}

// Fade returns the tail colour for trail position i of a stream of the
// given length: full strength just behind the lead, black at the end.
func Fade(tail engine.RGB, i, length int) engine.RGB {
	span := max(1, length-1)
	return tail.Scale(1 - float64(i)/float64(span))
}
