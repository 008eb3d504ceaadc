package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/whiteStainX/ncmatrix/internal/engine"
)

const background = "#0a0a0a"

// GridToSVG draws the set cells of g as monospace text. scale is the cell
// height in pixels; cells are half as wide.
func GridToSVG(g *engine.Grid, scale float64) string {
	if g == nil {
		return ""
	}
	if scale <= 0 {
		scale = 16
	}

	cellW := scale / 2
	width := float64(g.Cols()) * cellW
	height := float64(g.Rows()) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g font-family="monospace" font-size="%.1f" text-anchor="middle">
`, width, height, width, height, background, scale))

	for row := 0; row < g.Rows(); row++ {
		for col, c := range g.Row(row) {
			if !c.Set || c.Glyph == ' ' {
				continue
			}
			x := float64(col)*cellW + cellW/2
			y := float64(row+1)*scale - scale*0.2
			weight := ""
			if c.Bold {
				weight = ` font-weight="bold"`
			}
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s"%s>%s</text>
`, x, y, c.Fg.Hex(), weight, html.EscapeString(string(c.Glyph))))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
