package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/termdraw/canvas"
	"github.com/lixenwraith/termdraw/scene"
	"github.com/lixenwraith/termdraw/terminal"
)

func newDrawCmd(opts *options) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "draw <scene.toml>",
		Short: "Render a scene file",
		Long:  `Render the dots, lines and polylines of a TOML scene file. Display settings in the file apply unless overridden by flags.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			d, err := resolveDisplay(cmd, opts, s.Display)
			if err != nil {
				return err
			}
			return present(cmd.Context(), os.Stdout, s, d, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "redraw on terminal resize until interrupted")
	return cmd
}

func newDemoCmd(opts *options) *cobra.Command {
	var (
		spokes int
		watch  bool
		dump   bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the built-in starburst",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scene.Demo(spokes)
			if dump {
				return s.Encode(cmd.OutOrStdout())
			}
			d, err := resolveDisplay(cmd, opts, s.Display)
			if err != nil {
				return err
			}
			return present(cmd.Context(), os.Stdout, s, d, watch)
		},
	}

	cmd.Flags().IntVarP(&spokes, "spokes", "n", 24, "number of spokes")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "redraw on terminal resize until interrupted")
	cmd.Flags().BoolVar(&dump, "dump", false, "print the demo as a scene file instead of drawing it")
	return cmd
}

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show terminal geometry and framebuffer size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDisplay(cmd, opts, scene.Display{})
			if err != nil {
				return err
			}

			var geo canvas.Geometry = terminal.StdoutGeometry
			tty := terminal.IsTerminal(os.Stdout)
			if !tty {
				geo = d.fallback
			}
			return describe(cmd.OutOrStdout(), geo, d, tty)
		},
	}
}
