package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/whiteStainX/ncmatrix/internal/engine"
)

type styleKey struct {
	fg   engine.RGB
	bold bool
}

// styles caches one lipgloss style per colour and weight. A frame only
// ever uses a few dozen.
type styles struct {
	cache map[styleKey]lipgloss.Style
}

func newStyles() *styles {
	return &styles{cache: make(map[styleKey]lipgloss.Style)}
}

func (s *styles) get(k styleKey) lipgloss.Style {
	st, ok := s.cache[k]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(k.fg.Hex())).Bold(k.bold)
		s.cache[k] = st
	}
	return st
}

// Render draws the grid as styled text, one line per row. Adjacent cells
// sharing a style are rendered as one run.
func Render(g *engine.Grid) string {
	return newStyles().render(g)
}

func (s *styles) render(g *engine.Grid) string {
	var b strings.Builder
	var run []rune
	for row := 0; row < g.Rows(); row++ {
		cells := g.Row(row)
		for i := 0; i < len(cells); {
			c := cells[i]
			if !c.Set {
				b.WriteByte(' ')
				i++
				continue
			}
			k := styleKey{fg: c.Fg, bold: c.Bold}
			run = run[:0]
			for ; i < len(cells) && cells[i].Set && (styleKey{cells[i].Fg, cells[i].Bold}) == k; i++ {
				run = append(run, cells[i].Glyph)
			}
			b.WriteString(s.get(k).Render(string(run)))
		}
		if row < g.Rows()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
