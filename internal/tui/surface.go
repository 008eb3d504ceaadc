package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/whiteStainX/ncmatrix/internal/engine"
)

// Surface draws onto a tcell screen.
type Surface struct {
	screen tcell.Screen
	style  tcell.Style
}

var _ engine.Surface = (*Surface)(nil)

func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen, style: tcell.StyleDefault}
}

func (s *Surface) Clear() { s.screen.Clear() }

func (s *Surface) SetStyle(fg engine.RGB, bold bool) {
	color := tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))
	s.style = tcell.StyleDefault.Foreground(color).Bold(bold)
}

// Put writes g at (row, col). tcell drops writes outside the screen.
func (s *Surface) Put(row, col int, g rune) {
	s.screen.SetContent(col, row, g, nil, s.style)
}
