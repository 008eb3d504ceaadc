package viz

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/whiteStainX/ncmatrix/internal/engine"
)

const (
	width      = 80
	height     = 24
	DefaultFPS = 60
)

type TickMsg time.Time

// Model runs one effect and owns the grid it draws into.
type Model struct {
	factory  func() engine.Effect
	effect   engine.Effect
	grid     *engine.Grid
	frame    *engine.Frame
	styles   *styles
	interval time.Duration
	running  bool
	finished bool
	frames   int
	logger   *slog.Logger

	// ExitOnFinish quits as soon as the effect finishes. Otherwise the last
	// frame stays up until a quit key.
	ExitOnFinish bool
}

// NewModel builds the first effect from factory; restart builds another.
func NewModel(factory func() engine.Effect, rng engine.Random, fps int, logger *slog.Logger) Model {
	if fps <= 0 {
		fps = DefaultFPS
	}
	grid := engine.NewGrid(height, width)
	return Model{
		factory: factory,
		effect:  factory(),
		grid:    grid,
		frame: &engine.Frame{
			Rows:    height,
			Cols:    width,
			Dt:      1.0 / float64(fps),
			Rand:    rng,
			Surface: grid,
		},
		styles:   newStyles(),
		interval: time.Second / time.Duration(fps),
		running:  true,
		logger:   logger,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "Q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r", "R":
			stopped := m.finished
			m.restart()
			if stopped {
				return m, m.tick()
			}
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Height, msg.Width)
	case TickMsg:
		if m.finished {
			return m, nil
		}
		if m.running {
			m.step()
		}
		if m.effect.Finished() {
			m.logger.Debug("effect finished", "frames", m.frames)
			if m.ExitOnFinish {
				return m, tea.Quit
			}
			m.finished = true
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.effect.Update(m.frame)
	m.effect.Render(m.frame)
	m.frames++
}

func (m *Model) restart() {
	m.logger.Debug("restarting effect", "frames", m.frames)
	m.effect = m.factory()
	m.frames = 0
	m.finished = false
	m.grid.Clear()
}

func (m *Model) resize(rows, cols int) {
	m.logger.Debug("terminal resized", "rows", rows, "cols", cols)
	m.grid.Resize(rows, cols)
	m.frame.Rows, m.frame.Cols = rows, cols
}

// Frames returns the number of frames stepped since the last restart.
func (m Model) Frames() int { return m.frames }

// Done reports whether the effect finished and is no longer stepped.
func (m Model) Done() bool { return m.finished }

// Grid returns the surface of the last frame.
func (m Model) Grid() *engine.Grid { return m.grid }

func (m Model) View() string {
	return m.styles.render(m.grid)
}

// Run plays the model on the alternate screen until the user quits or ctx
// is cancelled. With ExitOnFinish it also returns once the effect finishes.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return errors.Wrap(err, "run bubbletea program")
}
