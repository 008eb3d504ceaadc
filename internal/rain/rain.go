package rain

import "github.com/whiteStainX/ncmatrix/internal/engine"

// Rain is endless (or timed) digital rain.
type Rain struct {
	field
	streams    []Stream
	rows, cols int
}

var _ engine.Effect = (*Rain)(nil)

func NewRain(s Settings) *Rain {
	return &Rain{field: newField(s)}
}

// Streams exposes the current population. Callers must not modify it.
func (r *Rain) Streams() []Stream { return r.streams }

// Elapsed returns the accumulated frame time.
func (r *Rain) Elapsed() float64 { return r.elapsed }

// ensure rebuilds the population when the column or stream count changed.
// It returns false for an empty frame.
func (r *Rain) ensure(f *engine.Frame, rng engine.Random) bool {
	if f.Empty() {
		return false
	}
	r.rows = f.Rows
	want := r.settings.StreamCount(f.Cols)
	if len(r.streams) == want && r.cols == f.Cols {
		return true
	}
	r.cols = f.Cols
	r.streams = make([]Stream, want)
	for i := range r.streams {
		r.reset(&r.streams[i], rng)
	}
	return true
}

func (r *Rain) reset(s *Stream, rng engine.Random) {
	r.spawn(s, r.rows, rng)
	s.X = wrap(engine.Uniform(rng, 0, float64(r.cols)), r.cols)
}

func (r *Rain) Update(f *engine.Frame) {
	dt := f.Delta()
	r.elapsed += dt

	rng := r.rand(f)
	if !r.ensure(f, rng) {
		return
	}
	for i := range r.streams {
		s := &r.streams[i]
		if s.markedForReset {
			r.reset(s, rng)
			continue
		}
		r.fall(s, dt, r.cols, rng)
		if s.Offscreen(r.rows) {
			s.markedForReset = true
		}
	}
}

func (r *Rain) Render(f *engine.Frame) {
	if f.Surface == nil {
		return
	}
	if !r.ensure(f, r.rand(f)) {
		return
	}
	f.Surface.Clear()
	for i := range r.streams {
		r.drawTrail(f.Surface, &r.streams[i], r.rows, r.cols)
	}
}

func (r *Rain) Finished() bool {
	return r.settings.Duration > 0 && r.elapsed > r.settings.Duration
}

func (r *Rain) Stats() engine.Stats {
	st := engine.Stats{Streams: len(r.streams), Phase: "raining"}
	for i := range r.streams {
		if r.streams[i].visible(r.rows) {
			st.Active++
		}
	}
	return st
}
