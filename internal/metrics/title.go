package metrics

import "github.com/whiteStainX/ncmatrix/internal/engine"

// TitleProgress is the fraction of title streams in place at the last frame.
// It stays 0 for effects without a title.
type TitleProgress struct {
	name     string
	progress float64
}

func NewTitleProgress() *TitleProgress {
	return &TitleProgress{name: "title_progress"}
}

func (p *TitleProgress) Name() string { return p.name }

func (p *TitleProgress) Observe(s engine.Stats, t float64) {
	if s.Titles == 0 {
		return
	}
	p.progress = float64(s.InPlace) / float64(s.Titles)
}

func (p *TitleProgress) Value() float64 { return p.progress }

func (p *TitleProgress) Reset() { p.progress = 0 }

// SettleTime records the first time the effect reported the given phase.
// Value is -1 until then.
type SettleTime struct {
	name  string
	phase string
	at    float64
	seen  bool
}

func NewSettleTime(phase string) *SettleTime {
	return &SettleTime{name: phase + "_time", phase: phase}
}

func (s *SettleTime) Name() string { return s.name }

func (s *SettleTime) Observe(st engine.Stats, t float64) {
	if s.seen || st.Phase != s.phase {
		return
	}
	s.at = t
	s.seen = true
}

func (s *SettleTime) Value() float64 {
	if !s.seen {
		return -1
	}
	return s.at
}

func (s *SettleTime) Reset() {
	s.at = 0
	s.seen = false
}
