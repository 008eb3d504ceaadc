package rain_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/whiteStainX/ncmatrix/internal/engine"
	"github.com/whiteStainX/ncmatrix/internal/rain"
)

var _ = Describe("Converge", func() {
	var settings rain.ConvergeSettings

	BeforeEach(func() {
		settings = rain.DefaultConvergeSettings()
		settings.Charset = testCharset
		settings.Title = []rune("AB")
		settings.TitleRow = 2
		settings.ConvergenceDuration = 1.0
	})

	Describe("title assignment", func() {
		It("centres the title and targets the title row", func() {
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 10, 1.0/60, 1)
			c.Update(f)

			streams := c.Streams()
			Expect(streams).To(HaveLen(10))
			Expect(c.Titles()).To(Equal(2))

			for col, s := range streams {
				Expect(s.X).To(Equal(float64(col)))
				switch col {
				case 4, 5:
					Expect(s.Converge.IsTitle).To(BeTrue())
					Expect(s.Converge.TargetY).To(Equal(2.0))
					Expect(s.Converge.AllowRespawn).To(BeFalse())
					Expect(s.Converge.State).NotTo(Equal(rain.Normal))
				default:
					Expect(s.Converge.IsTitle).To(BeFalse())
					Expect(s.Converge.State).To(Equal(rain.Normal))
				}
			}
			Expect(streams[4].Converge.TitleGlyph).To(Equal('A'))
			Expect(streams[5].Converge.TitleGlyph).To(Equal('B'))
			Expect(streams[4].Lead()).To(Equal('A'))
			Expect(streams[5].Lead()).To(Equal('B'))
		})

		It("skips spaces", func() {
			settings.Title = []rune("A B")
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 10, 1.0/60, 1)
			c.Update(f)

			streams := c.Streams()
			Expect(c.Titles()).To(Equal(2))
			Expect(streams[3].Converge.TitleGlyph).To(Equal('A'))
			Expect(streams[4].Converge.IsTitle).To(BeFalse())
			Expect(streams[5].Converge.TitleGlyph).To(Equal('B'))
		})

		It("clips a title wider than the surface", func() {
			settings.Title = []rune("HELLO")
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 3, 1.0/60, 1)
			c.Update(f)

			Expect(c.Titles()).To(Equal(3))
			var glyphs []rune
			for _, s := range c.Streams() {
				glyphs = append(glyphs, s.Converge.TitleGlyph)
			}
			Expect(string(glyphs)).To(Equal("HEL"))
		})

		It("derives the convergence speed from the distance to the target", func() {
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 10, 1.0/60, 8)
			c.Render(f)

			for _, col := range []int{4, 5} {
				s := c.Streams()[col]
				Expect(s.Speed).To(BeNumerically("~", 2.0-s.Y, 1e-9))
			}
		})

		It("spreads the convergence speed by the randomness", func() {
			settings.ConvergenceRandomness = 0.5
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 10, 1.0/60, 8)
			c.Render(f)

			for _, col := range []int{4, 5} {
				s := c.Streams()[col]
				base := 2.0 - s.Y
				Expect(s.Speed).To(And(
					BeNumerically(">=", base*0.5-1e-9),
					BeNumerically("<=", base*1.5+1e-9),
				))
			}
		})

		DescribeTable("TitleStart",
			func(width, cols, want int) {
				Expect(rain.TitleStart(width, cols)).To(Equal(want))
			},
			Entry("centred", 2, 10, 4),
			Entry("odd remainder", 3, 10, 3),
			Entry("exact fit", 10, 10, 0),
			Entry("wider than surface", 12, 10, 0),
			Entry("empty surface", 2, 0, 0),
		)

		DescribeTable("TargetRow",
			func(titleRow, rows, want int) {
				Expect(rain.TargetRow(titleRow, rows)).To(Equal(want))
			},
			Entry("explicit", 2, 5, 2),
			Entry("unset", 0, 5, 2),
			Entry("out of range", 5, 5, 2),
			Entry("negative", -1, 24, 12),
		)
	})

	Describe("the AB scenario", func() {
		It("spells the title, drains the rain and finishes", func() {
			c := rain.NewConverge(settings)
			f, grid := newFrame(5, 10, 1.0/60, 21)

			inactive := map[int]bool{}
			phases := []rain.Phase{rain.Running}
			for i := 0; i < 10000 && !c.Finished(); i++ {
				c.Update(f)
				for col, s := range c.Streams() {
					cv := s.Converge
					Expect(s.Length).To(BeNumerically("<=", s.MaxLength))
					if cv.IsTitle {
						Expect(cv.State).NotTo(Equal(rain.Normal))
						Expect(s.Lead()).To(Equal(cv.TitleGlyph))
						if cv.State == rain.InPlace {
							Expect(s.Y).To(Equal(cv.TargetY))
						}
						continue
					}
					if inactive[col] {
						Expect(cv.Inactive).To(BeTrue())
					}
					inactive[col] = cv.Inactive
				}
				phases = appendPhase(phases, c.Phase())
				c.Render(f)
				phases = appendPhase(phases, c.Phase())
			}

			Expect(c.Finished()).To(BeTrue())
			Expect(c.Phase()).To(Equal(rain.Settled))
			Expect(phases).To(ContainElement(rain.Converged))
			for i := 1; i < len(phases); i++ {
				Expect(phases[i]).To(BeNumerically(">", phases[i-1]))
			}

			a, b := grid.At(2, 4), grid.At(2, 5)
			Expect(a.Glyph).To(Equal('A'))
			Expect(b.Glyph).To(Equal('B'))
			Expect(a.Bold).To(BeTrue())
			Expect(a.Fg).To(Equal(settings.LeadColor.RGB()))
			Expect(grid.Filled()).To(Equal(2))
		})

		It("waits one render after draining before finishing", func() {
			c := rain.NewConverge(settings)
			f, grid := newFrame(5, 10, 1.0/60, 21)

			for i := 0; i < 10000 && c.Phase() != rain.Drained; i++ {
				Expect(c.Finished()).To(BeFalse())
				c.Update(f)
				if c.Phase() == rain.Drained {
					break
				}
				c.Render(f)
			}

			Expect(c.Phase()).To(Equal(rain.Drained))
			Expect(c.Finished()).To(BeFalse())

			c.Render(f)
			Expect(c.Phase()).To(Equal(rain.Settled))
			Expect(c.Finished()).To(BeTrue())
			Expect(grid.At(2, 4).Glyph).To(Equal('A'))
			Expect(grid.At(2, 5).Glyph).To(Equal('B'))
			Expect(grid.Filled()).To(Equal(2))
		})

		It("reports stats along the way", func() {
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 10, 1.0/60, 21)
			tick(c, f)

			st := c.Stats()
			Expect(st.Streams).To(Equal(10))
			Expect(st.Titles).To(Equal(2))
			Expect(st.Converging + st.InPlace).To(Equal(2))
			Expect(st.Phase).To(Equal("running"))
		})
	})

	Describe("completion", func() {
		It("never finishes without a title or duration", func() {
			settings.Title = nil
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 10, 0.1, 2)
			for i := 0; i < 600; i++ {
				tick(c, f)
			}
			Expect(c.Titles()).To(BeZero())
			Expect(c.Phase()).To(Equal(rain.Running))
			Expect(c.Finished()).To(BeFalse())
		})

		It("never finishes for an all-space title", func() {
			settings.Title = []rune("   ")
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 10, 0.1, 2)
			for i := 0; i < 600; i++ {
				tick(c, f)
			}
			Expect(c.Titles()).To(BeZero())
			Expect(c.Finished()).To(BeFalse())
		})

		It("lets a positive duration override the title sequence", func() {
			settings.Duration = 0.5
			settings.ConvergenceDuration = 100
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 10, 0.25, 2)

			tick(c, f)
			tick(c, f)
			Expect(c.Finished()).To(BeFalse())
			tick(c, f)
			Expect(c.Finished()).To(BeTrue())
			Expect(c.Phase()).To(Equal(rain.Running))
		})
	})

	Describe("resizing", func() {
		It("rebuilds and restarts the sequence", func() {
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 10, 1.0/60, 13)
			for i := 0; i < 600 && c.Phase() == rain.Running; i++ {
				tick(c, f)
			}
			Expect(c.Phase()).NotTo(Equal(rain.Running))

			f.Cols = 20
			c.Update(f)
			Expect(c.Phase()).To(Equal(rain.Running))
			Expect(c.Streams()).To(HaveLen(20))
			Expect(c.Streams()[9].Converge.TitleGlyph).To(Equal('A'))
			Expect(c.Streams()[10].Converge.TitleGlyph).To(Equal('B'))
		})

		It("rebuilds on a row change", func() {
			c := rain.NewConverge(settings)
			f, _ := newFrame(5, 10, 1.0/60, 13)
			c.Update(f)

			f.Rows = 9
			c.Update(f)
			Expect(c.Streams()[4].Converge.TargetY).To(Equal(2.0))
			settings.TitleRow = 0
			c = rain.NewConverge(settings)
			c.Update(f)
			Expect(c.Streams()[4].Converge.TargetY).To(Equal(4.0))
		})

		It("ignores zero-sized frames", func() {
			c := rain.NewConverge(settings)
			f := &engine.Frame{Rows: 5, Cols: 0, Dt: 0.1, Rand: engine.NewRandom(1)}
			c.Update(f)
			c.Render(f)
			Expect(c.Streams()).To(BeEmpty())
			Expect(c.Elapsed()).To(Equal(0.1))
		})
	})

	Describe("Phase", func() {
		It("names every phase", func() {
			Expect(rain.Running.String()).To(Equal("running"))
			Expect(rain.Converged.String()).To(Equal("converged"))
			Expect(rain.Draining.String()).To(Equal("draining"))
			Expect(rain.Drained.String()).To(Equal("drained"))
			Expect(rain.Settled.String()).To(Equal("settled"))
			Expect(rain.Phase(42).String()).To(Equal("unknown"))
		})
	})
})

// appendPhase records p when it differs from the last recorded phase.
func appendPhase(phases []rain.Phase, p rain.Phase) []rain.Phase {
	if phases[len(phases)-1] == p {
		return phases
	}
	return append(phases, p)
}
