package rain

import (
	"math"

	"github.com/whiteStainX/ncmatrix/internal/engine"
	"github.com/whiteStainX/ncmatrix/internal/glyph"
)

// shimmerChance is the per-tick probability that one trail glyph changes.
const shimmerChance = 0.1

// StreamState is the convergence state of a stream.
type StreamState int

const (
	Normal StreamState = iota
	Converging
	InPlace
)

func (s StreamState) String() string {
	switch s {
	case Normal:
		return "normal"
	case Converging:
		return "converging"
	case InPlace:
		return "in-place"
	default:
		return "unknown"
	}
}

// Convergence is the per-stream state only Converge uses.
type Convergence struct {
	State      StreamState
	TitleGlyph rune
	TargetY    float64
	IsTitle    bool
	// AllowRespawn is cleared for title streams and, once draining starts,
	// for every other stream.
	AllowRespawn bool
	// Inactive streams are neither advanced nor drawn.
	Inactive bool
}

// Stream is one falling trail of glyphs. Glyphs[0] is the lead.
type Stream struct {
	X, Y      float64
	Speed     float64
	Length    int
	MaxLength int
	Glyphs    []rune
	HasLead   bool

	// Converge is nil for plain rain.
	Converge *Convergence

	markedForReset bool
}

// Lead returns the lead glyph, or ' ' for an empty stream.
func (s *Stream) Lead() rune {
	if len(s.Glyphs) == 0 {
		return ' '
	}
	return s.Glyphs[0]
}

// Offscreen reports whether the whole trail has passed the bottom row.
func (s *Stream) Offscreen(rows int) bool {
	return s.Y-float64(s.Length) > float64(rows)
}

// visible reports whether any trail position lands on a row in [0, rows).
func (s *Stream) visible(rows int) bool {
	n := min(s.Length, len(s.Glyphs))
	if n == 0 {
		return false
	}
	head := int(math.Floor(s.Y))
	return head >= 0 && head-(n-1) < rows
}

// field holds what both effects need to spawn, move and draw streams.
type field struct {
	settings Settings
	palette  *glyph.Palette
	slant    float64
	lead     engine.RGB
	tail     engine.RGB
	fallback engine.Random
	elapsed  float64
}

func newField(s Settings) field {
	return field{
		settings: s,
		slant:    s.Slant(),
		lead:     s.LeadColor.RGB(),
		tail:     s.TailColor.RGB(),
		fallback: engine.NewRandom(0),
	}
}

func (f *field) rand(fr *engine.Frame) engine.Random {
	return engine.ResolveRandom(fr.Rand, f.fallback)
}

// glyphs loads the palette on first use.
func (f *field) glyphs() *glyph.Palette {
	if f.palette == nil {
		f.palette = f.settings.palette()
	}
	return f.palette
}

// spawn gives s a fresh life above the top edge. X is left to the caller.
func (f *field) spawn(s *Stream, rows int, rng engine.Random) {
	speedLo, speedHi := f.settings.SpeedRange()
	lenLo, lenHi := f.settings.LengthRange()

	s.Speed = engine.Uniform(rng, speedLo, speedHi)
	s.MaxLength = engine.UniformInt(rng, lenLo, lenHi)
	s.Length = engine.UniformInt(rng, lenLo, s.MaxLength)
	s.Y = engine.Uniform(rng, -float64(rows), 0)
	s.HasLead = true
	s.markedForReset = false

	if cap(s.Glyphs) >= s.MaxLength {
		s.Glyphs = s.Glyphs[:s.MaxLength]
	} else {
		s.Glyphs = make([]rune, s.MaxLength)
	}
	p := f.glyphs()
	for i := range s.Glyphs {
		s.Glyphs[i] = p.Pick(rng)
	}
}

// fall advances a free-falling stream by dt: move along the slant, wrap
// horizontally, grow, refresh the lead and maybe shimmer.
func (f *field) fall(s *Stream, dt float64, cols int, rng engine.Random) {
	s.Y += s.Speed * dt
	s.X = wrap(s.X+s.Speed*f.slant*dt, cols)
	if s.Length < s.MaxLength {
		s.Length++
	}
	if len(s.Glyphs) == 0 {
		return
	}
	p := f.glyphs()
	s.Glyphs[0] = p.Pick(rng)
	if rng.Float64() < shimmerChance {
		s.Glyphs[rng.IntN(len(s.Glyphs))] = p.Pick(rng)
	}
}

// wrap maps x into [0, n).
func wrap(x float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	w := float64(n)
	x = math.Mod(x, w)
	if x < 0 {
		x += w
	}
	if x >= w {
		x = 0
	}
	return x
}

func wrapInt(x, n int) int {
	if n <= 0 {
		return 0
	}
	x %= n
	if x < 0 {
		x += n
	}
	return x
}
