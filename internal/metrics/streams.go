package metrics

import "github.com/whiteStainX/ncmatrix/internal/engine"

// ActiveStreams is the mean number of visible streams per frame.
type ActiveStreams struct {
	name    string
	total   int
	samples int
}

func NewActiveStreams() *ActiveStreams {
	return &ActiveStreams{name: "active_streams"}
}

func (a *ActiveStreams) Name() string { return a.name }

func (a *ActiveStreams) Observe(s engine.Stats, t float64) {
	a.total += s.Active
	a.samples++
}

func (a *ActiveStreams) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.total) / float64(a.samples)
}

func (a *ActiveStreams) Reset() {
	a.total = 0
	a.samples = 0
}

type PeakActive struct {
	name string
	peak int
}

func NewPeakActive() *PeakActive {
	return &PeakActive{name: "peak_active"}
}

func (p *PeakActive) Name() string { return p.name }

func (p *PeakActive) Observe(s engine.Stats, t float64) {
	p.peak = max(p.peak, s.Active)
}

func (p *PeakActive) Value() float64 { return float64(p.peak) }

func (p *PeakActive) Reset() { p.peak = 0 }

// GlyphsDrawn is the mean number of cells written per frame.
type GlyphsDrawn struct {
	name    string
	total   int
	samples int
}

func NewGlyphsDrawn() *GlyphsDrawn {
	return &GlyphsDrawn{name: "glyphs_drawn"}
}

func (g *GlyphsDrawn) Name() string { return g.name }

func (g *GlyphsDrawn) Observe(s engine.Stats, t float64) {
	g.total += s.Drawn
	g.samples++
}

func (g *GlyphsDrawn) Value() float64 {
	if g.samples == 0 {
		return 0
	}
	return float64(g.total) / float64(g.samples)
}

func (g *GlyphsDrawn) Reset() {
	g.total = 0
	g.samples = 0
}
