package rain_test

import (
	"math"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/whiteStainX/ncmatrix/internal/engine"
	"github.com/whiteStainX/ncmatrix/internal/engine/mock_engine"
	"github.com/whiteStainX/ncmatrix/internal/rain"
)

var _ = Describe("Rain", func() {
	var settings rain.Settings

	BeforeEach(func() {
		settings = rain.DefaultSettings()
		settings.Charset = testCharset
	})

	Describe("stream invariants", func() {
		It("keeps length, glyphs and column within bounds", func() {
			settings.SlantAngle = 30
			r := rain.NewRain(settings)
			f, _ := newFrame(24, 80, 1.0/60, 7)

			for i := 0; i < 600; i++ {
				tick(r, f)
				for _, s := range r.Streams() {
					Expect(s.Length).To(BeNumerically("<=", s.MaxLength))
					Expect(s.Glyphs).To(HaveLen(s.MaxLength))
					Expect(s.X).To(And(BeNumerically(">=", 0), BeNumerically("<", 80)))
					Expect(s.HasLead).To(BeTrue())
					Expect(s.Converge).To(BeNil())
				}
			}
		})

		It("wraps horizontally under a steep slant", func() {
			settings.SlantAngle = 45
			settings.MinSpeed, settings.MaxSpeed = 10, 10
			r := rain.NewRain(settings)
			f, _ := newFrame(10, 7, 0.1, 3)

			for i := 0; i < 200; i++ {
				r.Update(f)
				for _, s := range r.Streams() {
					Expect(s.X).To(And(BeNumerically(">=", 0), BeNumerically("<", 7)))
				}
			}
		})

		It("samples the single speed of a degenerate range", func() {
			settings.MinSpeed, settings.MaxSpeed = 5, 5
			r := rain.NewRain(settings)
			f, _ := newFrame(24, 40, 1.0/60, 11)

			for i := 0; i < 300; i++ {
				r.Update(f)
				for _, s := range r.Streams() {
					Expect(s.Speed).To(Equal(5.0))
				}
			}
		})

		It("orders swapped bounds", func() {
			settings.MinSpeed, settings.MaxSpeed = 15, 5
			settings.MinLength, settings.MaxLength = 20, 5
			r := rain.NewRain(settings)
			f, _ := newFrame(24, 40, 1.0/60, 5)

			for i := 0; i < 300; i++ {
				r.Update(f)
				for _, s := range r.Streams() {
					Expect(s.Speed).To(And(BeNumerically(">=", 5), BeNumerically("<=", 15)))
					Expect(s.MaxLength).To(And(BeNumerically(">=", 5), BeNumerically("<=", 20)))
				}
			}
		})

		It("raises a zero minimum length to one", func() {
			settings.MinLength, settings.MaxLength = 0, 0
			r := rain.NewRain(settings)
			f, _ := newFrame(10, 10, 1.0/60, 5)

			r.Update(f)
			for _, s := range r.Streams() {
				Expect(s.MaxLength).To(Equal(1))
				Expect(s.Length).To(Equal(1))
			}
		})
	})

	Describe("population", func() {
		DescribeTable("stream count",
			func(cols int, density float64, want int) {
				settings.Density = density
				r := rain.NewRain(settings)
				f, _ := newFrame(10, cols, 1.0/60, 1)
				r.Update(f)
				Expect(r.Streams()).To(HaveLen(want))
			},
			Entry("one per column", 80, 1.0, 80),
			Entry("half density", 40, 0.5, 20),
			Entry("double density", 10, 2.0, 20),
			Entry("non-positive density", 30, 0.0, 30),
			Entry("at least one", 3, 0.1, 1),
		)

		It("rebuilds when the column count changes", func() {
			r := rain.NewRain(settings)
			f, _ := newFrame(24, 80, 1.0/60, 2)
			for i := 0; i < 30; i++ {
				r.Update(f)
			}
			Expect(r.Streams()).To(HaveLen(80))

			f.Cols = 40
			r.Update(f)
			Expect(r.Streams()).To(HaveLen(40))
			for _, s := range r.Streams() {
				Expect(s.X).To(BeNumerically("<", 40))
				Expect(s.Glyphs).To(HaveLen(s.MaxLength))
			}
		})

		It("does nothing on a zero-sized frame but still counts time", func() {
			ctrl := gomock.NewController(GinkgoT())
			surface := mock_engine.NewMockSurface(ctrl)

			r := rain.NewRain(settings)
			f := &engine.Frame{Rows: 0, Cols: 80, Dt: 0.5, Rand: engine.NewRandom(1), Surface: surface}
			r.Update(f)
			r.Render(f)

			Expect(r.Streams()).To(BeEmpty())
			Expect(r.Elapsed()).To(Equal(0.5))
		})

		It("falls back to its own source without a frame random", func() {
			r := rain.NewRain(settings)
			f, grid := newFrame(12, 20, 1.0/60, 0)
			f.Rand = nil
			Expect(func() {
				for i := 0; i < 120; i++ {
					tick(r, f)
				}
			}).NotTo(Panic())
			Expect(grid.Filled()).To(BeNumerically(">", 0))
		})

		It("is reproducible for a fixed seed", func() {
			a, b := rain.NewRain(settings), rain.NewRain(settings)
			fa, ga := newFrame(16, 30, 1.0/30, 42)
			fb, gb := newFrame(16, 30, 1.0/30, 42)
			for i := 0; i < 90; i++ {
				tick(a, fa)
				tick(b, fb)
			}
			Expect(ga.String()).To(Equal(gb.String()))
		})
	})

	Describe("completion", func() {
		It("finishes only after the duration has passed", func() {
			settings.Duration = 2.0
			r := rain.NewRain(settings)
			f, _ := newFrame(10, 10, 0.5, 1)

			for i := 0; i < 4; i++ {
				tick(r, f)
				Expect(r.Finished()).To(BeFalse())
			}
			tick(r, f)
			Expect(r.Finished()).To(BeTrue())
		})

		It("never finishes without a duration", func() {
			r := rain.NewRain(settings)
			f, _ := newFrame(10, 10, 0.5, 1)
			for i := 0; i < 1000; i++ {
				tick(r, f)
			}
			Expect(r.Finished()).To(BeFalse())
		})

		It("substitutes the default frame time for a non-positive dt", func() {
			r := rain.NewRain(settings)
			f, _ := newFrame(10, 10, 0, 1)
			r.Update(f)
			Expect(r.Elapsed()).To(Equal(engine.DefaultFrameTime))
		})
	})

	Describe("rendering", func() {
		It("clears the surface before drawing", func() {
			ctrl := gomock.NewController(GinkgoT())
			surface := mock_engine.NewMockSurface(ctrl)

			first := surface.EXPECT().Clear().Times(1)
			surface.EXPECT().SetStyle(gomock.Any(), gomock.Any()).After(first).AnyTimes()
			surface.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).After(first).AnyTimes()

			r := rain.NewRain(settings)
			f := &engine.Frame{Rows: 10, Cols: 10, Dt: 0.1, Rand: engine.NewRandom(4), Surface: surface}
			r.Update(f)
			r.Render(f)
		})

		It("draws leads bold in the lead colour and tails unbolded in faded tail colour", func() {
			r := rain.NewRain(settings)
			f, grid := newFrame(24, 40, 1.0/60, 9)
			for i := 0; i < 240; i++ {
				tick(r, f)
			}

			lead := settings.LeadColor.RGB()
			Expect(grid.Filled()).To(BeNumerically(">", 0))
			for row := 0; row < grid.Rows(); row++ {
				for _, c := range grid.Row(row) {
					if !c.Set {
						continue
					}
					Expect(c.Glyph).To(BeElementOf(testCharsetElems()...))
					if c.Bold {
						Expect(c.Fg).To(Equal(lead))
						continue
					}
					Expect(c.Fg.R).To(BeZero())
					Expect(c.Fg.B).To(BeZero())
				}
			}
		})
	})

	Describe("Fade", func() {
		tail := engine.RGB{G: 255}

		It("keeps full strength for a single-cell trail", func() {
			Expect(rain.Fade(tail, 0, 1)).To(Equal(tail))
		})

		It("fades linearly to black", func() {
			Expect(rain.Fade(tail, 0, 5)).To(Equal(tail))
			Expect(rain.Fade(tail, 2, 5)).To(Equal(engine.RGB{G: 127}))
			Expect(rain.Fade(tail, 4, 5)).To(Equal(engine.RGB{}))
		})
	})

	Describe("Settings", func() {
		It("converts the slant to a horizontal drift factor", func() {
			s := rain.Settings{SlantAngle: 45}
			Expect(s.Slant()).To(BeNumerically("~", 1.0, 1e-12))
			Expect(rain.Settings{}.Slant()).To(BeZero())
		})

		It("normalises ranges", func() {
			s := rain.Settings{MinSpeed: 9, MaxSpeed: 3, MinLength: -4, MaxLength: -2}
			lo, hi := s.SpeedRange()
			Expect([]float64{lo, hi}).To(Equal([]float64{3, 9}))
			l, h := s.LengthRange()
			Expect([]int{l, h}).To(Equal([]int{1, 1}))
			Expect(math.IsNaN(lo)).To(BeFalse())
		})
	})
})

func testCharsetElems() []any {
	out := make([]any, len(testCharset))
	for i, r := range testCharset {
		out[i] = r
	}
	return out
}
