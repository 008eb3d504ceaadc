package engine

//go:generate mockgen -destination=mock_engine/mock_engine.go -package=mock_engine github.com/whiteStainX/ncmatrix/internal/engine Random,Surface

// DefaultFrameTime replaces a non-positive frame delta.
const DefaultFrameTime = 1.0 / 60.0

// Random is the pseudo-random source shared by a host and its effects.
// *math/rand/v2.Rand satisfies it.
type Random interface {
	// Float64 returns a number in [0, 1).
	Float64() float64
	// IntN returns a number in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// Surface is a text surface an effect draws onto.
type Surface interface {
	Clear()
	SetStyle(fg RGB, bold bool)
	Put(row, col int, g rune)
}

// Frame is the input an effect receives for one tick.
type Frame struct {
	Rows, Cols int
	Dt         float64
	Rand       Random
	Surface    Surface
}

// Delta returns the frame delta in seconds, substituting DefaultFrameTime
// for non-positive values.
func (f *Frame) Delta() float64 {
	if f.Dt > 0 {
		return f.Dt
	}
	return DefaultFrameTime
}

// Empty reports whether the frame has a zero dimension.
func (f *Frame) Empty() bool {
	return f.Rows <= 0 || f.Cols <= 0
}

// Effect is an animation driven by a host loop: Update then Render once per
// tick, then Finished.
type Effect interface {
	Update(f *Frame)
	Render(f *Frame)
	Finished() bool
}

// Stats is a snapshot of an effect's population after a tick.
type Stats struct {
	Streams    int
	Active     int
	Converging int
	InPlace    int
	Titles     int
	Drawn      int
	Phase      string
}

// Reporter is implemented by effects that expose population stats.
type Reporter interface {
	Stats() Stats
}

type Metric interface {
	Name() string
	Observe(s Stats, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(s Stats, t float64)
}
