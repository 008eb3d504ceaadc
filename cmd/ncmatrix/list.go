package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/whiteStainX/ncmatrix/internal/config"
	"github.com/whiteStainX/ncmatrix/internal/glyph"
	"github.com/whiteStainX/ncmatrix/internal/store"
)

const sampleWidth = 24

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tANIMATION\tSPEED\tDENSITY")
			for _, name := range config.ListPresets() {
				p, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				r := p.Effect.Rain
				fmt.Fprintf(w, "%s\t%s\t%g-%g\t%g\n", name, p.Animation, r.MinSpeed, r.MaxSpeed, r.Density)
			}
			return w.Flush()
		},
	}
}

func charsetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "charsets",
		Short: "list named character sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGLYPHS\tSAMPLE")
			for _, name := range glyph.NamedSets() {
				set, _ := glyph.Lookup(name)
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(set), ansi.Truncate(string(set), sampleWidth, "…"))
			}
			return w.Flush()
		},
	}
}

func themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "list colour themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range config.Themes {
				lead := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Lead.RGBA().RGB().Hex()))
				tail := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Tail.RGBA().RGB().Hex()))
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s%s\n", t.Name, lead.Render("ｱ"), tail.Render("ｲｳｴｵｶ"))
			}
			return nil
		},
	}
}

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "list benchmark runs saved with bench --save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			runs, err := store.New(dir).List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEFFECT\tSIZE\tFRAMES\tFINISHED")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%t\n", r.ID, r.Effect, r.Rows, r.Cols, r.Frames, r.Finished)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("dir", "runs", "run directory")
	return cmd
}
