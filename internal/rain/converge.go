package rain

import "github.com/whiteStainX/ncmatrix/internal/engine"

// Phase is the progress of a Converge effect toward its settled title.
type Phase int

const (
	// Running: title streams are still travelling.
	Running Phase = iota
	// Converged: every title stream is in place.
	Converged
	// Draining: ordinary streams may no longer respawn.
	Draining
	// Drained: no ordinary stream is left on screen.
	Drained
	// Settled: the drained frame has been drawn once.
	Settled
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case Draining:
		return "draining"
	case Drained:
		return "drained"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Converge is rain in which the streams under a title slow into place to
// spell it, then the remaining rain drains away.
type Converge struct {
	field
	title     []rune
	titleRow  int
	duration  float64
	jitter    float64
	streams   []Stream
	rows      int
	cols      int
	phase     Phase
	titles    int
	populated bool
}

var _ engine.Effect = (*Converge)(nil)

func NewConverge(s ConvergeSettings) *Converge {
	return &Converge{
		field:    newField(s.Settings),
		title:    append([]rune(nil), s.Title...),
		titleRow: s.TitleRow,
		duration: s.ConvergenceDuration,
		jitter:   clamp(s.ConvergenceRandomness, 0, 1),
	}
}

func (c *Converge) Streams() []Stream { return c.streams }
func (c *Converge) Phase() Phase      { return c.phase }
func (c *Converge) Elapsed() float64  { return c.elapsed }

// Titles returns the number of streams assigned a title glyph.
func (c *Converge) Titles() int { return c.titles }

// ensure rebuilds one stream per column when the extents changed and
// assigns the title. It returns false for an empty frame.
func (c *Converge) ensure(f *engine.Frame, rng engine.Random) bool {
	if f.Empty() {
		return false
	}
	if c.populated && f.Rows == c.rows && f.Cols == c.cols {
		return true
	}
	c.rows, c.cols = f.Rows, f.Cols
	c.streams = make([]Stream, c.cols)
	for col := range c.streams {
		s := &c.streams[col]
		s.X = float64(col)
		c.respawn(s, rng)
	}
	c.assignTitle(rng)
	c.phase = Running
	c.populated = true
	return true
}

func (c *Converge) respawn(s *Stream, rng engine.Random) {
	c.spawn(s, c.rows, rng)
	if s.Converge == nil {
		s.Converge = &Convergence{}
	}
	*s.Converge = Convergence{
		State:        Normal,
		TitleGlyph:   ' ',
		AllowRespawn: true,
	}
}

// TitleStart returns the first column of a title of the given width,
// centred on cols.
func TitleStart(width, cols int) int {
	start := 0
	if cols > width {
		start = (cols - width) / 2
	}
	return min(start, max(0, cols-1))
}

// TargetRow returns the row the title settles on.
func TargetRow(titleRow, rows int) int {
	if titleRow > 0 && titleRow < rows {
		return titleRow
	}
	return rows / 2
}

func (c *Converge) assignTitle(rng engine.Random) {
	c.titles = 0
	if len(c.title) == 0 {
		return
	}
	start := TitleStart(len(c.title), c.cols)
	target := float64(TargetRow(c.titleRow, c.rows))

	for i, g := range c.title {
		col := start + i
		if col >= c.cols {
			break
		}
		if g == ' ' {
			continue
		}
		s := &c.streams[col]
		s.Converge.IsTitle = true
		s.Converge.State = Converging
		s.Converge.TitleGlyph = g
		s.Converge.TargetY = target
		s.Converge.AllowRespawn = false
		s.Converge.Inactive = false

		if len(s.Glyphs) == 0 {
			s.Glyphs = make([]rune, max(s.MaxLength, 1))
		}
		s.Glyphs[0] = g

		if c.duration > 0 {
			if required := (target - s.Y) / c.duration; required > 0 {
				s.Speed = required * engine.Uniform(rng, max(0.1, 1-c.jitter), 1+c.jitter)
			}
		}
		c.titles++
	}
}

func (c *Converge) Update(f *engine.Frame) {
	dt := f.Delta()
	c.elapsed += dt

	rng := c.rand(f)
	if !c.ensure(f, rng) {
		return
	}
	if c.phase == Converged {
		c.phase = Draining
	}

	placed := c.titles > 0
	cleared := true
	for i := range c.streams {
		s := &c.streams[i]
		cv := s.Converge
		if c.phase == Draining && !cv.IsTitle {
			cv.AllowRespawn = false
		}

		c.step(s, dt, rng)

		if cv.IsTitle {
			if cv.State != InPlace {
				placed = false
			}
		} else if !cv.Inactive && s.Length > 0 {
			cleared = false
		}
	}

	switch c.phase {
	case Running:
		if placed {
			c.phase = Converged
		}
	case Draining:
		if cleared {
			c.phase = Drained
		}
	}
}

func (c *Converge) step(s *Stream, dt float64, rng engine.Random) {
	cv := s.Converge
	if cv.Inactive {
		return
	}
	switch cv.State {
	case Normal:
		c.fall(s, dt, c.cols, rng)
		if !s.Offscreen(c.rows) {
			return
		}
		if cv.AllowRespawn {
			c.respawn(s, rng)
			return
		}
		s.Length = 0
		cv.Inactive = true
	case Converging:
		s.Y += s.Speed * dt
		if len(s.Glyphs) > 0 {
			s.Glyphs[0] = cv.TitleGlyph
			if rng.Float64() < shimmerChance {
				if i := rng.IntN(len(s.Glyphs)); i != 0 {
					s.Glyphs[i] = c.glyphs().Pick(rng)
				}
			}
		}
		if s.Y >= cv.TargetY {
			s.Y = cv.TargetY
			cv.State = InPlace
		}
	case InPlace:
		s.Y = cv.TargetY
	}
	s.X = wrap(s.X, c.cols)
}

func (c *Converge) Render(f *engine.Frame) {
	if f.Surface == nil {
		return
	}
	if !c.ensure(f, c.rand(f)) {
		return
	}
	f.Surface.Clear()
	for i := range c.streams {
		s := &c.streams[i]
		cv := s.Converge
		switch {
		case cv.State == InPlace:
			if cv.TitleGlyph == ' ' {
				continue
			}
			f.Surface.SetStyle(c.lead, true)
			f.Surface.Put(int(cv.TargetY), wrapInt(int(s.X), c.cols), cv.TitleGlyph)
		case cv.Inactive && !cv.IsTitle:
			continue
		default:
			c.drawTrail(f.Surface, s, c.rows, c.cols)
		}
	}
	if c.phase == Drained {
		c.phase = Settled
	}
}

// Finished reports completion. A positive Duration overrides the title
// sequence entirely.
func (c *Converge) Finished() bool {
	if c.settings.Duration > 0 {
		return c.elapsed > c.settings.Duration
	}
	return c.titles > 0 && c.phase == Settled
}

func (c *Converge) Stats() engine.Stats {
	st := engine.Stats{
		Streams: len(c.streams),
		Titles:  c.titles,
		Phase:   c.phase.String(),
	}
	for i := range c.streams {
		s := &c.streams[i]
		switch s.Converge.State {
		case Converging:
			st.Converging++
		case InPlace:
			st.InPlace++
			st.Active++
			continue
		}
		if !s.Converge.Inactive && s.visible(c.rows) {
			st.Active++
		}
	}
	return st
}
