package main

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/whiteStainX/ncmatrix/internal/config"
	"github.com/whiteStainX/ncmatrix/internal/engine"
	"github.com/whiteStainX/ncmatrix/internal/glyph"
	"github.com/whiteStainX/ncmatrix/internal/scene"
	"github.com/whiteStainX/ncmatrix/internal/tui"
	"github.com/whiteStainX/ncmatrix/internal/viz"
)

// Tuning flags shared by run, bench and frame. They override the config
// only when set on the command line.
var (
	slant          float64
	duration       float64
	minSpeed       float64
	maxSpeed       float64
	minLength      int
	maxLength      int
	density        float64
	charset        string
	theme          string
	title          string
	titleRow       int
	convergeTime   float64
	convergeJitter float64
)

func addTuningFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&slant, "slant", 0, "slant angle in degrees")
	fs.Float64Var(&duration, "duration", 0, "stop after this many seconds (0 = unbounded)")
	fs.Float64Var(&minSpeed, "min-speed", 5, "minimum fall speed (rows/s)")
	fs.Float64Var(&maxSpeed, "max-speed", 15, "maximum fall speed (rows/s)")
	fs.IntVar(&minLength, "min-length", 5, "minimum trail length")
	fs.IntVar(&maxLength, "max-length", 20, "maximum trail length")
	fs.Float64Var(&density, "density", 1, "streams per column (rain only)")
	fs.StringVar(&charset, "charset", "", "named character set or inline glyphs")
	fs.StringVar(&theme, "theme", "", "colour theme")
	fs.StringVar(&title, "title", "", "title to converge into")
	fs.IntVar(&titleRow, "title-row", 0, "row of the title (0 = centred)")
	fs.Float64Var(&convergeTime, "converge-time", 5, "seconds for the title to form")
	fs.Float64Var(&convergeJitter, "converge-jitter", 0, "spread of title arrival times (0-1)")
}

func applyTuning(fs *pflag.FlagSet, cfg *config.Config) {
	r := &cfg.Effect.Rain
	cv := &cfg.Effect.Converge
	if fs.Changed("slant") {
		r.SlantAngle = slant
	}
	if fs.Changed("duration") {
		r.Duration = duration
	}
	if fs.Changed("min-speed") {
		r.MinSpeed = minSpeed
	}
	if fs.Changed("max-speed") {
		r.MaxSpeed = maxSpeed
	}
	if fs.Changed("min-length") {
		r.MinLength = minLength
	}
	if fs.Changed("max-length") {
		r.MaxLength = maxLength
	}
	if fs.Changed("density") {
		r.Density = density
	}
	if fs.Changed("charset") {
		if _, ok := glyph.Named[charset]; ok {
			r.CharacterSetName = charset
			r.CharacterSet = nil
		} else {
			r.CharacterSet = config.Charset(charset)
		}
	}
	if fs.Changed("theme") {
		r.Theme = theme
	}
	if fs.Changed("title") {
		cv.Title = title
	}
	if fs.Changed("title-row") {
		cv.TitleRow = titleRow
	}
	if fs.Changed("converge-time") {
		cv.ConvergenceDuration = convergeTime
	}
	if fs.Changed("converge-jitter") {
		cv.ConvergenceRandomness = convergeJitter
	}
}

// loadConfig reads the preset or config file, then applies the flags that
// were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if preset != "" {
		cfg, err = config.GetPreset(preset)
	} else {
		cfg, err = config.LoadOrDefault(configFile, slog.Default())
	}
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("backend") {
		cfg.Backend = backend
	}
	if fs.Changed("fps") {
		cfg.FPS = fps
	}
	if fs.Changed("seed") {
		cfg.Seed = seed
	}
	if fs.Lookup("slant") != nil {
		applyTuning(fs, cfg)
	}
	return cfg, nil
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "run [rain|converge]",
		Short:     "play an animation",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"rain", "converge"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			name := cfg.Animation
			if len(args) == 1 {
				name = args[0]
			}
			return play(cmd.Context(), name, cfg)
		},
	}
	addTuningFlags(cmd.Flags())
	return cmd
}

// play runs the named effect full screen on the configured backend.
func play(ctx context.Context, name string, cfg *config.Config) error {
	logger := slog.Default()
	sc, err := scene.New(name, cfg, logger, scene.NewRegistry())
	if err != nil {
		return err
	}
	rng := engine.NewRandom(cfg.Seed)

	logger.Debug("starting", "effect", name, "backend", cfg.Backend, "fps", cfg.FPS, "seed", cfg.Seed)
	switch cfg.Backend {
	case "bubbletea", "":
		quietForScreen()
		m := viz.NewModel(sc.Effect, rng, cfg.FPS, logger)
		m.ExitOnFinish = exitOnDone
		return viz.Run(ctx, m)
	case "tcell":
		screen, err := tui.Open()
		if err != nil {
			return err
		}
		defer screen.Fini()
		quietForScreen()
		host := tui.NewHost(screen, sc.Effect, rng, cfg.FPS, logger)
		host.ExitOnFinish = exitOnDone
		return host.Run(ctx)
	default:
		return errors.Wrapf(engine.ErrUnknownBackend, "%q", cfg.Backend)
	}
}
