package rain

import (
	"math"

	"github.com/whiteStainX/ncmatrix/internal/engine"
	"github.com/whiteStainX/ncmatrix/internal/glyph"
)

const (
	DefaultMinSpeed    = 5.0
	DefaultMaxSpeed    = 15.0
	DefaultMinLength   = 5
	DefaultMaxLength   = 20
	DefaultDensity     = 1.0
	DefaultLeadColor   = engine.RGBA(0xFFFFFFFF)
	DefaultTailColor   = engine.RGBA(0x00FF00FF)
	DefaultCharsetFile = "katakana.txt"

	DefaultConvergenceDuration = 5.0
)

// Settings configures a rain effect. The zero value is usable but draws
// nothing interesting; start from DefaultSettings.
type Settings struct {
	// SlantAngle in degrees; 0 falls straight down.
	SlantAngle float64
	// Duration in seconds; <= 0 runs forever.
	Duration float64

	MinSpeed, MaxSpeed   float64
	MinLength, MaxLength int

	// Density is streams per column for Rain. Converge always uses one
	// stream per column.
	Density float64

	LeadColor engine.RGBA
	TailColor engine.RGBA

	Charset     []rune
	CharsetFile string
}

func DefaultSettings() Settings {
	return Settings{
		MinSpeed:    DefaultMinSpeed,
		MaxSpeed:    DefaultMaxSpeed,
		MinLength:   DefaultMinLength,
		MaxLength:   DefaultMaxLength,
		Density:     DefaultDensity,
		LeadColor:   DefaultLeadColor,
		TailColor:   DefaultTailColor,
		CharsetFile: DefaultCharsetFile,
	}
}

// ConvergeSettings configures a Converge effect.
type ConvergeSettings struct {
	Settings

	Title []rune
	// TitleRow is the row the title settles on. 0 or out of range centres it.
	TitleRow int
	// ConvergenceDuration is the nominal time for a title stream to reach
	// its row.
	ConvergenceDuration float64
	// ConvergenceRandomness spreads arrival times; clamped to [0, 1].
	ConvergenceRandomness float64
}

func DefaultConvergeSettings() ConvergeSettings {
	return ConvergeSettings{
		Settings:            DefaultSettings(),
		ConvergenceDuration: DefaultConvergenceDuration,
	}
}

// SpeedRange returns the speed bounds in ascending order.
func (s Settings) SpeedRange() (lo, hi float64) {
	return math.Min(s.MinSpeed, s.MaxSpeed), math.Max(s.MinSpeed, s.MaxSpeed)
}

// LengthRange returns the trail length bounds in ascending order, with the
// lower bound raised to 1.
func (s Settings) LengthRange() (lo, hi int) {
	lo, hi = min(s.MinLength, s.MaxLength), max(s.MinLength, s.MaxLength)
	lo = max(1, lo)
	hi = max(lo, hi)
	return lo, hi
}

// Slant returns the horizontal drift per unit of fall.
func (s Settings) Slant() float64 {
	return math.Tan(s.SlantAngle * math.Pi / 180)
}

// StreamCount returns how many streams Rain keeps for cols columns.
func (s Settings) StreamCount(cols int) int {
	density := s.Density
	if density <= 0 {
		density = DefaultDensity
	}
	return max(1, int(math.Floor(float64(cols)*density)))
}

func (s Settings) palette() *glyph.Palette {
	set, _ := glyph.Resolve(s.Charset, s.CharsetFile)
	return glyph.NewPalette(set)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
