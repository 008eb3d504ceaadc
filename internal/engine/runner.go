package engine

import (
	"context"

	"github.com/pkg/errors"
)

// RunConfig drives a headless run.
type RunConfig struct {
	Rows, Cols int
	Dt         float64
	Frames     int
	Seed       uint64
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Rows:   24,
		Cols:   80,
		Dt:     DefaultFrameTime,
		Frames: 600,
	}
}

// Result summarises a headless run.
type Result struct {
	Frames   int
	Elapsed  float64
	Finished bool
	Stats    []Stats
	Metrics  map[string]float64
}

// Runner steps an effect at a fixed dt without a terminal, the way a host
// loop would: update, render, then the completion check.
type Runner struct {
	effect    Effect
	grid      *Grid
	metrics   []Metric
	observers []Observer
}

func NewRunner(effect Effect, grid *Grid) *Runner {
	return &Runner{
		effect:    effect,
		grid:      grid,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Grid returns the surface holding the last rendered frame.
func (r *Runner) Grid() *Grid { return r.grid }

func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}
	if r.grid == nil {
		return nil, ErrNoSurface
	}

	r.grid.Resize(cfg.Rows, cfg.Cols)
	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Stats:   make([]Stats, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	frame := &Frame{
		Rows:    cfg.Rows,
		Cols:    cfg.Cols,
		Dt:      cfg.Dt,
		Rand:    NewRandom(cfg.Seed),
		Surface: r.grid,
	}

	t := 0.0
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.effect.Update(frame)
		r.effect.Render(frame)
		t += frame.Delta()
		result.Frames++
		result.Elapsed = t

		s := r.snapshot()
		result.Stats = append(result.Stats, s)
		for _, m := range r.metrics {
			m.Observe(s, t)
		}
		for _, obs := range r.observers {
			obs.OnFrame(s, t)
		}

		if r.effect.Finished() {
			result.Finished = true
			break
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) snapshot() Stats {
	var s Stats
	if rep, ok := r.effect.(Reporter); ok {
		s = rep.Stats()
	}
	s.Drawn = r.grid.Filled()
	return s
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "frames must be positive, got %d", cfg.Frames)
	}
	if cfg.Rows < 0 || cfg.Cols < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative extents %dx%d", cfg.Rows, cfg.Cols)
	}
	return nil
}
