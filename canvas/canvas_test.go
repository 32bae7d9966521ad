package canvas

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/termdraw/framebuffer"
	"github.com/lixenwraith/termdraw/terminal"
)

type norm = framebuffer.NormPos

// geometry is a mutable geometry provider
type geometry struct {
	cols, rows int
	err        error
}

func (g *geometry) Size() (int, int, error) { return g.cols, g.rows, g.err }

// frame records painter calls
type frame struct {
	width, rows  int
	cells        [][2]terminal.RGB
	begun, ended int
	endErr       error
}

func (f *frame) Begin(width, rows int) error {
	f.width, f.rows = width, rows
	f.cells = f.cells[:0]
	f.begun++
	return nil
}

func (f *frame) Paint(top, bottom terminal.RGB) {
	f.cells = append(f.cells, [2]terminal.RGB{top, bottom})
}

func (f *frame) End() error {
	f.ended++
	return f.endErr
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(&bytes.Buffer{}, log.Options{Level: log.DebugLevel})
}

func TestNewDerivesDimensions(t *testing.T) {
	tests := []struct {
		name          string
		cols, rows    int
		reserve       bool
		width, height int
	}{
		{"Full screen", 80, 24, false, 80, 48},
		{"Reserved row", 80, 24, true, 80, 46},
		{"Single row", 5, 1, false, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(&geometry{cols: tt.cols, rows: tt.rows}, &frame{},
				WithReservedRow(tt.reserve), WithLogger(quietLogger()))
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if c.Width() != tt.width || c.Height() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", c.Width(), c.Height(), tt.width, tt.height)
			}
		})
	}
}

func TestNewRejectsEmptyGeometry(t *testing.T) {
	_, err := New(&geometry{cols: 80, rows: 1}, &frame{}, WithReservedRow(true), WithLogger(quietLogger()))
	if !errors.Is(err, framebuffer.ErrInvalidGeometry) {
		t.Errorf("one row with reserve: error = %v, want ErrInvalidGeometry", err)
	}

	_, err = New(&geometry{cols: 0, rows: 10}, &frame{}, WithLogger(quietLogger()))
	if !errors.Is(err, framebuffer.ErrInvalidGeometry) {
		t.Errorf("zero cols: error = %v, want ErrInvalidGeometry", err)
	}

	geoErr := errors.New("no tty")
	_, err = New(&geometry{err: geoErr}, &frame{}, WithLogger(quietLogger()))
	if !errors.Is(err, geoErr) {
		t.Errorf("provider failure: error = %v, want wrapped %v", err, geoErr)
	}
}

func TestRenderPaintsEveryCellPair(t *testing.T) {
	f := &frame{}
	c, err := New(&geometry{cols: 10, rows: 5}, f, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	red := terminal.RGB{R: 255, G: 0, B: 0}
	c.Line(norm{X: 0, Y: 0}, norm{X: 1, Y: 1}, red)

	if err := c.Render(); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if f.begun != 1 || f.ended != 1 {
		t.Fatalf("Begin/End called %d/%d times", f.begun, f.ended)
	}
	if f.width != 10 || f.rows != 5 {
		t.Errorf("frame = %dx%d, want 10x5", f.width, f.rows)
	}
	if len(f.cells) != 50 {
		t.Fatalf("painted %d cells, want 50", len(f.cells))
	}

	// Diagonal (i, i) lands in terminal row i/2, top half for even i
	for i := 0; i < 10; i++ {
		pair := f.cells[(i/2)*10+i]
		got := pair[i%2]
		if got != red {
			t.Errorf("diagonal cell %d = %v, want red", i, got)
		}
	}
}

func TestClearAndDot(t *testing.T) {
	f := &frame{}
	c, err := New(&geometry{cols: 10, rows: 5}, f, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	p := norm{X: 0, Y: 0}
	c.Dot(p, terminal.RGB{R: 255, G: 0, B: 0})
	c.Dot(p, terminal.RGB{R: 0, G: 0, B: 255})
	if got := c.Framebuffer().At(framebuffer.CellPos{}); got.Color != (terminal.RGB{R: 127, G: 0, B: 127}) || got.Density != 2 {
		t.Errorf("cell = %+v, want {(127,0,127) 2}", got)
	}

	c.Clear()
	if got := c.Framebuffer().At(framebuffer.CellPos{}); got != (framebuffer.Cell{}) {
		t.Errorf("cell after Clear = %+v", got)
	}
}

func TestRecalibrateFollowsGeometry(t *testing.T) {
	geo := &geometry{cols: 10, rows: 5}
	c, err := New(geo, &frame{}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.Dot(norm{X: 0, Y: 0}, terminal.RGB{R: 9, G: 9, B: 9})

	geo.cols, geo.rows = 20, 8
	if err := c.Recalibrate(); err != nil {
		t.Fatalf("Recalibrate failed: %v", err)
	}
	if c.Width() != 20 || c.Height() != 16 {
		t.Errorf("size = %dx%d, want 20x16", c.Width(), c.Height())
	}
	if got := c.Framebuffer().At(framebuffer.CellPos{}); got.Density != 0 {
		t.Errorf("content survived recalibration: %+v", got)
	}
}

func TestRenderPropagatesPainterError(t *testing.T) {
	f := &frame{endErr: errors.New("broken pipe")}
	c, err := New(&geometry{cols: 2, rows: 1}, f, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := c.Render(); err == nil || !strings.Contains(err.Error(), "broken pipe") {
		t.Errorf("Render error = %v, want wrapped painter error", err)
	}
}

func TestRenderThroughANSIPainter(t *testing.T) {
	var buf bytes.Buffer
	p := terminal.NewANSIPainter(&buf, terminal.ColorModeTrueColor)
	p.Inline = true

	c, err := New(terminal.FixedGeometry{Cols: 3, Rows: 2}, p, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.Line(norm{X: 0, Y: 0}, norm{X: 1, Y: 0}, terminal.RGB{R: 0, G: 255, B: 0})
	if err := c.Render(); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if n := strings.Count(lines[0], "38;2;0;255;0;48;2;0;0;0m"); n != 3 {
		t.Errorf("first row has %d green-over-black cells, want 3", n)
	}
}
