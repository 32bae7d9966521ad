package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termdraw/canvas"
	"github.com/lixenwraith/termdraw/scene"
	"github.com/lixenwraith/termdraw/terminal"
	"github.com/lixenwraith/termdraw/terminal/screen"
)

// present draws s once, then keeps redrawing on resize while watch is set
func present(ctx context.Context, out *os.File, s *scene.Scene, d display, watch bool) error {
	logger := loggerFromContext(ctx)
	logger.Debug("presenting", "shapes", s.Len(), "backend", d.backend, "mode", d.mode, "watch", watch)

	if err := ctx.Err(); err != nil {
		return err
	}

	if d.backend == scene.BackendTcell {
		return presentScreen(ctx, logger, s, d)
	}
	return presentANSI(ctx, logger, out, s, d, watch)
}

// frame clears the canvas, replays the scene and renders it
func frame(c *canvas.Canvas, s *scene.Scene) error {
	c.Clear()
	s.Draw(c)
	return c.Render()
}

func presentANSI(ctx context.Context, logger *log.Logger, out *os.File, s *scene.Scene, d display, watch bool) error {
	painter := terminal.NewANSIPainter(out, d.mode)

	var geo canvas.Geometry = terminal.FileGeometry{File: out}
	tty := terminal.IsTerminal(out)
	if !tty {
		// Piped output: fixed size, plain lines, no cursor control
		geo = d.fallback
		painter.Inline = true
		watch = false
	}

	c, err := canvas.New(geo, painter, canvas.WithReservedRow(d.reserveRow), canvas.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := frame(c, s); err != nil {
		return err
	}

	if watch {
		resize := terminal.WatchResize(ctx, int(out.Fd()))
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case ev, ok := <-resize:
				if !ok {
					break loop
				}
				logger.Debug("resize", "cols", ev.Width, "rows", ev.Height)
				if err := c.Recalibrate(); err != nil {
					return err
				}
				if err := frame(c, s); err != nil {
					return err
				}
			}
		}
	}

	if tty {
		// Leave the prompt below the picture
		io.WriteString(out, "\r\n")
	}
	return ctx.Err()
}

func presentScreen(ctx context.Context, logger *log.Logger, s *scene.Scene, d display) error {
	painter, err := screen.Open()
	if err != nil {
		return err
	}
	defer painter.Close()

	c, err := canvas.New(painter, painter, canvas.WithReservedRow(d.reserveRow), canvas.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := frame(c, s); err != nil {
		return err
	}

	events := make(chan tcell.Event, 8)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := painter.Screen().PollEvent()
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
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				painter.Screen().Sync()
				if err := c.Recalibrate(); err != nil {
					return err
				}
				if err := frame(c, s); err != nil {
					return err
				}
			case *tcell.EventKey:
				if isQuitKey(ev) {
					return nil
				}
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// describe reports geometry and derived framebuffer size
func describe(w io.Writer, geo canvas.Geometry, d display, tty bool) error {
	cols, rows, err := geo.Size()
	if err != nil {
		return err
	}
	width, height := canvas.Dimensions(cols, rows, d.reserveRow)
	fmt.Fprintf(w, "terminal=%dx%d tty=%t\n", cols, rows, tty)
	fmt.Fprintf(w, "width=%d height=%d\n", width, height)
	fmt.Fprintf(w, "color=%s backend=%s reserve_row=%t\n", d.mode, d.backend, d.reserveRow)
	return nil
}
