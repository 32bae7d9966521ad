// Package screen paints half-block frames through a tcell screen.
//
// It is the alternative to the direct ANSI painter for terminals where
// terminfo-driven output is preferable, and doubles as a geometry provider.
package screen

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termdraw/terminal"
)

// Painter implements terminal.Painter on top of a tcell.Screen
type Painter struct {
	screen tcell.Screen
	width  int
	rows   int
	x, y   int
}

// New wraps an initialized screen
func New(s tcell.Screen) *Painter {
	return &Painter{screen: s}
}

// Open creates and initializes a screen on the controlling terminal
func Open() (*Painter, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("tcell init: %w", err)
	}
	s.HideCursor()
	return New(s), nil
}

// Close restores the terminal
func (p *Painter) Close() {
	p.screen.Fini()
}

// Screen returns the underlying tcell screen for event handling
func (p *Painter) Screen() tcell.Screen {
	return p.screen
}

// Size implements the geometry provider using the screen's current size
func (p *Painter) Size() (int, int, error) {
	w, h := p.screen.Size()
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", terminal.ErrNoGeometry, w, h)
	}
	return w, h, nil
}

// Begin starts a frame at the top-left cell
func (p *Painter) Begin(width, rows int) error {
	p.width = width
	p.rows = rows
	p.x, p.y = 0, 0
	p.screen.Clear()
	return nil
}

// Paint sets the next cell to an upper half block with top as foreground
func (p *Painter) Paint(top, bottom terminal.RGB) {
	style := tcell.StyleDefault.
		Foreground(toColor(top)).
		Background(toColor(bottom))
	p.screen.SetContent(p.x, p.y, terminal.PixelGlyph, nil, style)

	p.x++
	if p.x >= p.width {
		p.x = 0
		p.y++
	}
}

// End presents the frame
func (p *Painter) End() error {
	p.screen.Show()
	return nil
}

func toColor(c terminal.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
