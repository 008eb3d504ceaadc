package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/whiteStainX/ncmatrix/internal/engine"
)

const DefaultFPS = 60

// Open creates and initialises the terminal screen. Callers must Fini it.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	screen.HideCursor()
	return screen, nil
}

// Host drives an effect on a tcell screen.
type Host struct {
	screen   tcell.Screen
	factory  func() engine.Effect
	effect   engine.Effect
	frame    *engine.Frame
	interval time.Duration
	running  bool
	finished bool
	frames   int
	logger   *slog.Logger

	// ExitOnFinish makes Run return once the effect finishes. Otherwise the
	// last frame stays up until a quit key.
	ExitOnFinish bool
}

func NewHost(screen tcell.Screen, factory func() engine.Effect, rng engine.Random, fps int, logger *slog.Logger) *Host {
	if fps <= 0 {
		fps = DefaultFPS
	}
	cols, rows := screen.Size()
	return &Host{
		screen:  screen,
		factory: factory,
		effect:  factory(),
		frame: &engine.Frame{
			Rows:    rows,
			Cols:    cols,
			Dt:      1.0 / float64(fps),
			Rand:    rng,
			Surface: NewSurface(screen),
		},
		interval: time.Second / time.Duration(fps),
		running:  true,
		logger:   logger,
	}
}

// Frames returns the number of frames stepped since the last restart.
func (h *Host) Frames() int { return h.frames }

// Step advances and draws one frame.
func (h *Host) Step() {
	h.effect.Update(h.frame)
	h.effect.Render(h.frame)
	h.screen.Show()
	h.frames++
}

// Run steps the effect on a ticker until a quit key or ctx cancellation.
// A finished effect is no longer stepped.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handle(ev) {
				return nil
			}
		case <-ticker.C:
			if h.finished {
				continue
			}
			if h.running {
				h.Step()
			}
			if h.effect.Finished() {
				h.logger.Debug("effect finished", "frames", h.frames)
				if h.ExitOnFinish {
					return nil
				}
				h.finished = true
			}
		}
	}
}

// handle reacts to one event and reports whether to keep running.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				h.running = !h.running
			case 'r', 'R':
				h.logger.Debug("restarting effect", "frames", h.frames)
				h.effect = h.factory()
				h.frames = 0
				h.finished = false
				h.screen.Clear()
			}
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.logger.Debug("terminal resized", "rows", rows, "cols", cols)
		h.frame.Rows, h.frame.Cols = rows, cols
		h.screen.Sync()
	}
	return true
}
