package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/whiteStainX/ncmatrix/internal/config"
	"github.com/whiteStainX/ncmatrix/internal/engine"
	"github.com/whiteStainX/ncmatrix/internal/export"
	"github.com/whiteStainX/ncmatrix/internal/metrics"
	"github.com/whiteStainX/ncmatrix/internal/scene"
	"github.com/whiteStainX/ncmatrix/internal/store"
	"github.com/whiteStainX/ncmatrix/internal/viz"
)

// headlessRun reads the run flags shared by bench and frame.
func headlessRun(cmd *cobra.Command, seed uint64) engine.RunConfig {
	fs := cmd.Flags()
	rc := engine.RunConfig{Seed: seed}
	rc.Frames, _ = fs.GetInt("frames")
	rc.Dt, _ = fs.GetFloat64("dt")
	rc.Rows, _ = fs.GetInt("rows")
	rc.Cols, _ = fs.GetInt("cols")
	return rc
}

func effectName(cfg *config.Config, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return cfg.Animation
}

func benchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "bench [rain|converge]",
		Short:     "run an animation headless and report metrics",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"rain", "converge"},
		RunE:      benchEffect,
	}
	cmd.Flags().Int("frames", 600, "frames to run")
	cmd.Flags().Float64("dt", engine.DefaultFrameTime, "seconds per frame")
	cmd.Flags().Int("rows", 24, "surface rows")
	cmd.Flags().Int("cols", 80, "surface columns")
	cmd.Flags().Int("runs", 1, "also run this many seeds in parallel and report mean metrics")
	cmd.Flags().String("save", "", "store the run under this directory")
	cmd.Flags().String("export", "", "write the run as JSON to this file (- for stdout)")
	addTuningFlags(cmd.Flags())
	return cmd
}

func benchEffect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name := effectName(cfg, args)
	sc, err := scene.New(name, cfg, slog.Default(), scene.NewRegistry())
	if err != nil {
		return err
	}

	rc := headlessRun(cmd, cfg.Seed)
	series := metrics.NewSeries(rc.Frames)

	start := time.Now()
	res, _, err := sc.Run(cmd.Context(), rc, series)
	if err != nil {
		return err
	}
	wall := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s on %dx%d\n\n", name, rc.Rows, rc.Cols)
	writeResult(out, res, wall)

	if series.Len() > 1 {
		graph := asciigraph.Plot(series.Active,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("active streams per frame"),
		)
		fmt.Fprintf(out, "\n%s\n", graph)
	}

	if n, _ := cmd.Flags().GetInt("runs"); n > 1 {
		results, err := scene.NewEnsemble(sc, n, rc.Seed).Run(cmd.Context(), rc)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nmean over %d seeds\n", n)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		writeMetrics(w, scene.MeanMetrics(results))
		w.Flush()
	}

	run := store.NewRun(name, rc, res)
	if dir, _ := cmd.Flags().GetString("save"); dir != "" {
		st := store.New(dir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(run, series)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nsaved run %s\n", id)
	}
	if path, _ := cmd.Flags().GetString("export"); path != "" {
		if path == "-" {
			return store.WriteJSON(out, run, series)
		}
		if err := store.ExportJSON(path, run, series); err != nil {
			return err
		}
		slog.Info("exported run", "path", path)
	}
	return nil
}

func writeResult(out io.Writer, res *engine.Result, wall time.Duration) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	fmt.Fprintf(w, "frames\t%d\n", res.Frames)
	fmt.Fprintf(w, "sim_time\t%.3fs\n", res.Elapsed)
	fmt.Fprintf(w, "wall_time\t%s\n", wall.Round(time.Microsecond))
	if s := wall.Seconds(); s > 0 {
		fmt.Fprintf(w, "frames_per_sec\t%.0f\n", float64(res.Frames)/s)
	}
	fmt.Fprintf(w, "finished\t%t\n", res.Finished)
	writeMetrics(w, res.Metrics)
	w.Flush()
}

func writeMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.3f\n", name, m[name])
	}
}

func frameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "frame [rain|converge]",
		Short:     "print a single frame after a headless run",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"rain", "converge"},
		RunE:      printFrame,
	}
	cmd.Flags().Int("frames", 120, "frames to run before printing")
	cmd.Flags().Float64("dt", engine.DefaultFrameTime, "seconds per frame")
	cmd.Flags().Int("rows", 24, "surface rows (default: terminal height)")
	cmd.Flags().Int("cols", 80, "surface columns (default: terminal width)")
	cmd.Flags().Bool("plain", false, "print without colours")
	cmd.Flags().String("svg", "", "write the frame as SVG to this file instead")
	addTuningFlags(cmd.Flags())
	return cmd
}

func printFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name := effectName(cfg, args)
	sc, err := scene.New(name, cfg, slog.Default(), scene.NewRegistry())
	if err != nil {
		return err
	}

	rc := headlessRun(cmd, cfg.Seed)
	rc.Rows, rc.Cols = frameSize(cmd, rc.Rows, rc.Cols)
	_, grid, err := sc.Run(cmd.Context(), rc)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("svg"); path != "" {
		if err := os.WriteFile(path, []byte(export.GridToSVG(grid, 16)), 0644); err != nil {
			return errors.Wrapf(err, "write %s", path)
		}
		slog.Info("wrote frame", "path", path)
		return nil
	}

	text := viz.Render(grid)
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		text = ansi.Strip(text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// frameSize uses the terminal size unless --rows or --cols was given.
func frameSize(cmd *cobra.Command, r, c int) (int, int) {
	if cmd.Flags().Changed("rows") || cmd.Flags().Changed("cols") {
		return r, c
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 1 {
		return h - 1, w
	}
	return r, c
}
