package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/termdraw/scene"
	"github.com/lixenwraith/termdraw/terminal"
)

// options holds persistent flag values shared by all subcommands
type options struct {
	verbose    bool
	logFile    string
	color      string
	backend    string
	reserveRow bool
	size       string
	logCloser  *os.File
}

// closeLog releases the log file opened for --log-file, if any
func (o *options) closeLog() error {
	if o.logCloser == nil {
		return nil
	}
	return o.logCloser.Close()
}

// execute runs the command tree and closes the log file even when the command fails
func execute(ctx context.Context, root *cobra.Command, opts *options) error {
	defer opts.closeLog()
	return root.ExecuteContext(ctx)
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "termdraw",
		Short:         "termdraw rasterizes lines into the terminal with half-block pixels",
		Long:          `termdraw draws dots and lines given in normalized [0,1] coordinates into a framebuffer with twice the terminal's vertical resolution, then paints it with upper half block glyphs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, f, err := setupLogging(opts.verbose, opts.logFile)
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			opts.logCloser = f
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.StringVarP(&opts.color, "color", "c", "auto", "color mode: auto, truecolor, 256")
	pf.StringVarP(&opts.backend, "backend", "b", scene.BackendANSI, "output backend: ansi, tcell")
	pf.BoolVar(&opts.reserveRow, "reserve-row", true, "keep the last terminal row free")
	pf.StringVar(&opts.size, "size", "80x24", "terminal size COLSxROWS used when stdout is not a terminal")

	root.AddCommand(newDrawCmd(opts))
	root.AddCommand(newDemoCmd(opts))
	root.AddCommand(newInfoCmd(opts))

	return root
}

// display is the effective output configuration after flags and scene settings are merged
type display struct {
	mode       terminal.ColorMode
	backend    string
	reserveRow bool
	fallback   terminal.FixedGeometry
}

// resolveDisplay merges scene settings with flags; an explicitly set flag wins
func resolveDisplay(cmd *cobra.Command, opts *options, d scene.Display) (display, error) {
	flags := cmd.Flags()

	colorName := d.ColorMode
	if flags.Changed("color") || colorName == "" {
		colorName = opts.color
	}
	mode, err := terminal.ParseColorMode(colorName)
	if err != nil {
		return display{}, err
	}

	backend := d.BackendName()
	if flags.Changed("backend") || d.Backend == "" {
		backend = strings.ToLower(opts.backend)
	}
	if backend != scene.BackendANSI && backend != scene.BackendTcell {
		return display{}, fmt.Errorf("unknown backend %q", backend)
	}

	reserve := d.Reserve()
	if flags.Changed("reserve-row") || d.ReserveRow == nil {
		reserve = opts.reserveRow
	}

	fallback, err := parseSize(opts.size)
	if err != nil {
		return display{}, err
	}

	return display{mode: mode, backend: backend, reserveRow: reserve, fallback: fallback}, nil
}

// parseSize parses "COLSxROWS"
func parseSize(s string) (terminal.FixedGeometry, error) {
	colsStr, rowsStr, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return terminal.FixedGeometry{}, fmt.Errorf("invalid size %q, want COLSxROWS", s)
	}
	cols, err := strconv.Atoi(colsStr)
	if err != nil {
		return terminal.FixedGeometry{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	rows, err := strconv.Atoi(rowsStr)
	if err != nil {
		return terminal.FixedGeometry{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if cols <= 0 || rows <= 0 {
		return terminal.FixedGeometry{}, fmt.Errorf("invalid size %q: dimensions must be positive", s)
	}
	return terminal.FixedGeometry{Cols: cols, Rows: rows}, nil
}
