package config

import (
	"sort"

	"github.com/pkg/errors"
)

// Presets are complete configurations selectable by name. Use GetPreset,
// which returns a copy.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"storm": func() *Config {
		c := DefaultConfig()
		c.Effect.Rain.SlantAngle = 15
		c.Effect.Rain.MinSpeed, c.Effect.Rain.MaxSpeed = 15, 35
		c.Effect.Rain.MinLength, c.Effect.Rain.MaxLength = 8, 30
		c.Effect.Rain.Density = 1.5
		return c
	}(),
	"drizzle": func() *Config {
		c := DefaultConfig()
		c.Effect.Rain.MinSpeed, c.Effect.Rain.MaxSpeed = 3, 8
		c.Effect.Rain.MinLength, c.Effect.Rain.MaxLength = 3, 10
		c.Effect.Rain.Density = 0.3
		return c
	}(),
	"amber": func() *Config {
		c := DefaultConfig()
		c.Effect.Rain.Theme = ThemeAmber.Name
		return c
	}(),
	"binary": func() *Config {
		c := DefaultConfig()
		c.Effect.Rain.CharacterSetName = "binary"
		c.Effect.Rain.Theme = ThemeIce.Name
		return c
	}(),
	"title": func() *Config {
		c := DefaultConfig()
		c.Animation = "converge"
		c.Effect.Converge.Title = "WAKE UP NEO"
		c.Effect.Converge.ConvergenceDuration = 4
		c.Effect.Converge.ConvergenceRandomness = 0.3
		return c
	}(),
}

func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "%q", name)
	}
	cfg := *p
	cfg.Effect.Rain.CharacterSet = append(Charset(nil), p.Effect.Rain.CharacterSet...)
	return &cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
