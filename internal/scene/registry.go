package scene

import (
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"github.com/whiteStainX/ncmatrix/internal/config"
	"github.com/whiteStainX/ncmatrix/internal/engine"
	"github.com/whiteStainX/ncmatrix/internal/metrics"
	"github.com/whiteStainX/ncmatrix/internal/rain"
)

// Factory builds a fresh effect from configuration.
type Factory func(cfg *config.Config, logger *slog.Logger) engine.Effect

type Registry struct {
	effects map[string]Factory
	titled  map[string]bool
}

func NewRegistry() *Registry {
	r := &Registry{
		effects: make(map[string]Factory),
		titled:  make(map[string]bool),
	}

	r.effects["rain"] = func(cfg *config.Config, logger *slog.Logger) engine.Effect {
		return rain.NewRain(cfg.RainSettings(logger))
	}
	r.effects["converge"] = func(cfg *config.Config, logger *slog.Logger) engine.Effect {
		return rain.NewConverge(cfg.ConvergeSettings(logger))
	}
	r.titled["converge"] = true

	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.effects[name] = f
}

func (r *Registry) Get(name string, cfg *config.Config, logger *slog.Logger) (engine.Effect, error) {
	fn, ok := r.effects[name]
	if !ok {
		return nil, errors.Wrapf(engine.ErrUnknownEffect, "%q", name)
	}
	return fn(cfg, logger), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.effects))
	for name := range r.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(name string) []engine.Metric {
	return metrics.Default(r.titled[name])
}
