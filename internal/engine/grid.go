package engine

import "strings"

// Cell is one character position of a Grid.
type Cell struct {
	Glyph rune
	Fg    RGB
	Bold  bool
	Set   bool
}

// Grid is an in-memory Surface. Put outside the grid is ignored.
type Grid struct {
	rows, cols int
	cells      [][]Cell
	fg         RGB
	bold       bool
}

func NewGrid(rows, cols int) *Grid {
	g := &Grid{}
	g.Resize(rows, cols)
	return g
}

// Resize reallocates the grid when the extents change. Contents are dropped.
func (g *Grid) Resize(rows, cols int) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	if rows == g.rows && cols == g.cols && g.cells != nil {
		return
	}
	g.rows, g.cols = rows, cols
	g.cells = make([][]Cell, rows)
	for i := range g.cells {
		g.cells[i] = make([]Cell, cols)
	}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) Clear() {
	for i := range g.cells {
		clear(g.cells[i])
	}
}

func (g *Grid) SetStyle(fg RGB, bold bool) {
	g.fg = fg
	g.bold = bold
}

func (g *Grid) Put(row, col int, r rune) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row][col] = Cell{Glyph: r, Fg: g.fg, Bold: g.bold, Set: true}
}

// At returns the cell at (row, col), or the zero Cell when out of range.
func (g *Grid) At(row, col int) Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return Cell{}
	}
	return g.cells[row][col]
}

// Row returns the cells of one row. The slice aliases the grid.
func (g *Grid) Row(row int) []Cell {
	if row < 0 || row >= g.rows {
		return nil
	}
	return g.cells[row]
}

// Filled counts cells written since the last Clear.
func (g *Grid) Filled() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c.Set {
				n++
			}
		}
	}
	return n
}

// String renders the glyphs without styling, one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for i, row := range g.cells {
		for _, c := range row {
			if c.Set {
				b.WriteRune(c.Glyph)
			} else {
				b.WriteByte(' ')
			}
		}
		if i < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
