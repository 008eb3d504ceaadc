package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/whiteStainX/ncmatrix/internal/glyph"
	"github.com/whiteStainX/ncmatrix/internal/rain"
)

const (
	DefaultAnimation  = "rain"
	DefaultBackend    = "bubbletea"
	DefaultFPS        = 60
	DefaultConfigFile = "matrix.toml"
)

var (
	ErrUnknownFormat = errors.New("config: unknown file format")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Animation string       `yaml:"animation" toml:"animation"`
	Backend   string       `yaml:"backend" toml:"backend"`
	FPS       int          `yaml:"fps" toml:"fps"`
	Seed      uint64       `yaml:"seed" toml:"seed"`
	Effect    EffectConfig `yaml:"effect" toml:"effect"`

	// dir anchors relative character set paths.
	dir string
}

type EffectConfig struct {
	Rain     RainConfig     `yaml:"cyberrain" toml:"cyberrain"`
	Converge ConvergeConfig `yaml:"converge" toml:"converge"`
}

// RainConfig is the [effect.cyberrain] table. Converge uses it too.
type RainConfig struct {
	SlantAngle float64 `yaml:"slantAngle" toml:"slantAngle"`
	Duration   float64 `yaml:"duration" toml:"duration"`
	MinSpeed   float64 `yaml:"minSpeed" toml:"minSpeed"`
	MaxSpeed   float64 `yaml:"maxSpeed" toml:"maxSpeed"`
	MinLength  int     `yaml:"minLength" toml:"minLength"`
	MaxLength  int     `yaml:"maxLength" toml:"maxLength"`
	Density    float64 `yaml:"density" toml:"density"`

	LeadColor Color  `yaml:"leadCharColor" toml:"leadCharColor"`
	TailColor Color  `yaml:"tailColor" toml:"tailColor"`
	Theme     string `yaml:"theme,omitempty" toml:"theme,omitempty"`

	CharacterSet     Charset `yaml:"characterSet,omitempty" toml:"characterSet,omitempty"`
	CharacterSetName string  `yaml:"characterSetName,omitempty" toml:"characterSetName,omitempty"`
	CharacterSetFile string  `yaml:"characterSetFile" toml:"characterSetFile"`
}

// ConvergeConfig is the [effect.converge] table.
type ConvergeConfig struct {
	Title                 string  `yaml:"title" toml:"title"`
	TitleRow              int     `yaml:"titleRow" toml:"titleRow"`
	ConvergenceDuration   float64 `yaml:"convergenceDuration" toml:"convergenceDuration"`
	ConvergenceRandomness float64 `yaml:"convergenceRandomness" toml:"convergenceRandomness"`
}

func DefaultConfig() *Config {
	return &Config{
		Animation: DefaultAnimation,
		Backend:   DefaultBackend,
		FPS:       DefaultFPS,
		Effect: EffectConfig{
			Rain: RainConfig{
				MinSpeed:         rain.DefaultMinSpeed,
				MaxSpeed:         rain.DefaultMaxSpeed,
				MinLength:        rain.DefaultMinLength,
				MaxLength:        rain.DefaultMaxLength,
				Density:          rain.DefaultDensity,
				LeadColor:        Color(rain.DefaultLeadColor),
				TailColor:        Color(rain.DefaultTailColor),
				CharacterSetFile: rain.DefaultCharsetFile,
			},
			Converge: ConvergeConfig{
				ConvergenceDuration: rain.DefaultConvergenceDuration,
			},
		},
	}
}

type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, errors.Wrapf(ErrUnknownFormat, "%s", path)
	}
}

// Load reads a TOML or YAML file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	cfg := DefaultConfig()
	switch f {
	case formatTOML:
		err = toml.Unmarshal(data, cfg)
	case formatYAML:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing or unparsable file yields
// the defaults. Only an unknown file extension is returned as an error.
func LoadOrDefault(path string, logger *slog.Logger) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info("config file not found, using built-in defaults", "path", path)
		return defaultsAt(path), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, ErrUnknownFormat) {
		return nil, err
	}
	if err != nil {
		logger.Warn("config file unusable, using built-in defaults", "path", path, "err", err)
		return defaultsAt(path), nil
	}
	return cfg, nil
}

func defaultsAt(path string) *Config {
	cfg := DefaultConfig()
	cfg.dir = filepath.Dir(path)
	return cfg
}

func Save(path string, cfg *Config) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch f {
	case formatTOML:
		var b strings.Builder
		if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
			return errors.Wrap(err, "encode toml")
		}
		data = []byte(b.String())
	case formatYAML:
		if data, err = yaml.Marshal(cfg); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "write config %s", path)
}

// Dir returns the directory relative character set paths resolve against.
func (c *Config) Dir() string { return c.dir }

// RainSettings converts the [effect.cyberrain] table into simulation
// settings. The character set is resolved here so the simulation never
// touches the filesystem.
func (c *Config) RainSettings(logger *slog.Logger) rain.Settings {
	r := c.Effect.Rain
	lead, tail := r.LeadColor, r.TailColor
	if r.Theme != "" {
		if th, ok := GetTheme(r.Theme); ok {
			lead, tail = th.Lead, th.Tail
		} else {
			logger.Warn("unknown theme, keeping configured colours", "theme", r.Theme)
		}
	}

	return rain.Settings{
		SlantAngle: r.SlantAngle,
		Duration:   r.Duration,
		MinSpeed:   r.MinSpeed,
		MaxSpeed:   r.MaxSpeed,
		MinLength:  r.MinLength,
		MaxLength:  r.MaxLength,
		Density:    r.Density,
		LeadColor:  lead.RGBA(),
		TailColor:  tail.RGBA(),
		Charset:    c.charset(logger),
	}
}

func (c *Config) ConvergeSettings(logger *slog.Logger) rain.ConvergeSettings {
	cv := c.Effect.Converge
	return rain.ConvergeSettings{
		Settings:              c.RainSettings(logger),
		Title:                 []rune(cv.Title),
		TitleRow:              cv.TitleRow,
		ConvergenceDuration:   cv.ConvergenceDuration,
		ConvergenceRandomness: cv.ConvergenceRandomness,
	}
}

// CharsetPath returns the character set file, resolved against the config
// directory when relative.
func (c *Config) CharsetPath() string {
	p := c.Effect.Rain.CharacterSetFile
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// charset resolves inline, then named, then file, then the fallback.
func (c *Config) charset(logger *slog.Logger) []rune {
	r := c.Effect.Rain
	if len(r.CharacterSet) > 0 {
		return []rune(r.CharacterSet)
	}
	if r.CharacterSetName != "" {
		if set, ok := glyph.Lookup(r.CharacterSetName); ok {
			return set
		}
		logger.Warn("unknown character set name", "name", r.CharacterSetName)
	}
	set, err := glyph.Resolve(nil, c.CharsetPath())
	if err != nil {
		logger.Info("character set file unusable, using fallback glyphs", "path", c.CharsetPath(), "err", err)
	}
	return set
}
