package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/whiteStainX/ncmatrix/internal/config"
)

var (
	configFile string
	preset     string
	backend    string
	fps        int
	seed       uint64
	debug      bool
	exitOnDone bool
	logFile    string

	logCloser io.Closer
)

// main registers the commands and executes the root command through fang.
// It exits with status 1 if the command returns an error.
func main() {
	rootCmd := newRootCmd()

	err := fang.Execute(context.Background(), rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	)
	if cerr := closeLog(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		os.Exit(1)
	}
}

// closeLog closes the debug log file, if one was opened. It runs after the
// command whether or not the command failed.
func closeLog() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ncmatrix",
		Short: "digital rain for the terminal",
		Long: `ncmatrix renders falling streams of glyphs in the terminal. The converge
animation lets the rain settle into a title before draining away.`,
		Example: `  # Play the animation configured in matrix.toml
  ncmatrix

  # Spell a title with a custom config
  ncmatrix -c ~/.config/ncmatrix.toml run converge --title "HELLO"

  # Measure a headless run
  ncmatrix bench rain --frames 1200`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			closer, err := setupLogging(cmd.ErrOrStderr(), debug, logFile)
			if err != nil {
				return err
			}
			logCloser = closer
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return play(cmd.Context(), cfg.Animation, cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", config.DefaultConfigFile, "config file (toml or yaml)")
	pf.StringVar(&preset, "preset", "", "use a preset instead of the config file")
	pf.StringVar(&backend, "backend", config.DefaultBackend, "terminal backend (bubbletea|tcell)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.BoolVar(&exitOnDone, "exit-on-finish", false, "quit as soon as the animation finishes instead of keeping the last frame")
	pf.BoolVarP(&debug, "debug", "d", false, "write debug logs to the log file")
	pf.StringVar(&logFile, "log-file", "ncmatrix.log", "debug log file")

	rootCmd.AddCommand(
		runCmd(),
		benchCmd(),
		frameCmd(),
		presetsCmd(),
		charsetsCmd(),
		themesCmd(),
		runsCmd(),
	)
	return rootCmd
}
