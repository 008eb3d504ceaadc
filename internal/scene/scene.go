package scene

import (
	"context"
	"log/slog"

	"github.com/whiteStainX/ncmatrix/internal/config"
	"github.com/whiteStainX/ncmatrix/internal/engine"
)

// Scene binds a registered effect to a configuration so hosts can build
// fresh instances on start and restart.
type Scene struct {
	name     string
	cfg      *config.Config
	logger   *slog.Logger
	registry *Registry
}

func New(name string, cfg *config.Config, logger *slog.Logger, registry *Registry) (*Scene, error) {
	if _, err := registry.Get(name, cfg, logger); err != nil {
		return nil, err
	}
	return &Scene{
		name:     name,
		cfg:      cfg,
		logger:   logger,
		registry: registry,
	}, nil
}

func (s *Scene) Name() string { return s.name }

// Effect builds a new effect instance.
func (s *Scene) Effect() engine.Effect {
	e, _ := s.registry.Get(s.name, s.cfg, s.logger)
	return e
}

// Run drives a fresh effect headlessly with the default metrics for the
// effect and returns the result and the final frame.
func (s *Scene) Run(ctx context.Context, rc engine.RunConfig, observers ...engine.Observer) (*engine.Result, *engine.Grid, error) {
	grid := engine.NewGrid(rc.Rows, rc.Cols)
	runner := engine.NewRunner(s.Effect(), grid)
	for _, m := range s.registry.DefaultMetrics(s.name) {
		runner.AddMetric(m)
	}
	for _, o := range observers {
		runner.AddObserver(o)
	}

	s.logger.Debug("headless run", "effect", s.name, "rows", rc.Rows, "cols", rc.Cols, "frames", rc.Frames)
	res, err := runner.Run(ctx, rc)
	return res, grid, err
}
