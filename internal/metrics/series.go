package metrics

import "github.com/whiteStainX/ncmatrix/internal/engine"

// Series records selected per-frame values for plotting.
type Series struct {
	Times  []float64
	Active []float64
	Drawn  []float64
}

func NewSeries(capacity int) *Series {
	return &Series{
		Times:  make([]float64, 0, capacity),
		Active: make([]float64, 0, capacity),
		Drawn:  make([]float64, 0, capacity),
	}
}

func (s *Series) OnFrame(st engine.Stats, t float64) {
	s.Times = append(s.Times, t)
	s.Active = append(s.Active, float64(st.Active))
	s.Drawn = append(s.Drawn, float64(st.Drawn))
}

func (s *Series) Len() int { return len(s.Times) }

// Default returns the metrics a bench run reports.
func Default(titled bool) []engine.Metric {
	m := []engine.Metric{
		NewActiveStreams(),
		NewPeakActive(),
		NewGlyphsDrawn(),
	}
	if titled {
		m = append(m, NewTitleProgress(), NewSettleTime("converged"), NewSettleTime("settled"))
	}
	return m
}
