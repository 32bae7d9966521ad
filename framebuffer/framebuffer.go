// Package framebuffer holds the accumulating colour grid behind a half-block
// terminal display.
//
// Two logical rows share one terminal row: row 2k is drawn as the foreground
// of an upper half block and row 2k+1 as its background, so the grid height
// is always even.
package framebuffer

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/termdraw/terminal"
)

// RGB is an alias to terminal.RGB so callers need only one colour type
type RGB = terminal.RGB

// ErrInvalidGeometry reports dimensions the grid cannot be built with
var ErrInvalidGeometry = errors.New("invalid framebuffer geometry")

// NormPos is a position in normalized [0,1] space, independent of terminal size
type NormPos struct {
	X, Y float64
}

// CellPos is a position in cell coordinates after scaling
type CellPos struct {
	X, Y int
}

// Framebuffer is a row-major grid of accumulating cells
// Not safe for concurrent use
type Framebuffer struct {
	cells  []Cell
	width  int
	height int
}

// New allocates a width × height grid with every cell black and unwritten
func New(width, height int) (*Framebuffer, error) {
	fb := &Framebuffer{}
	if err := fb.Recalibrate(width, height); err != nil {
		return nil, err
	}
	return fb, nil
}

// Recalibrate rebuilds the grid for new dimensions, all prior content is lost
func (fb *Framebuffer) Recalibrate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, width, height)
	}
	if height%2 != 0 {
		return fmt.Errorf("%w: height %d is odd", ErrInvalidGeometry, height)
	}

	fb.cells = make([]Cell, width*height)
	fb.width = width
	fb.height = height
	return nil
}

// Width returns the grid width in cells
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the grid height in cells, always even
func (fb *Framebuffer) Height() int { return fb.height }

// Rows returns the number of terminal rows the grid renders to
func (fb *Framebuffer) Rows() int { return fb.height / 2 }

// Clear resets every cell to black with zero density, reusing storage
func (fb *Framebuffer) Clear() {
	if len(fb.cells) == 0 {
		return
	}
	fb.cells[0] = Cell{}
	// Exponential copy
	for filled := 1; filled < len(fb.cells); filled *= 2 {
		copy(fb.cells[filled:], fb.cells[:filled])
	}
}

// inBounds returns true if p addresses a cell of the grid
func (fb *Framebuffer) inBounds(p CellPos) bool {
	return p.X >= 0 && p.X < fb.width && p.Y >= 0 && p.Y < fb.height
}

// index returns the slice offset for p, panicking outside the grid
func (fb *Framebuffer) index(p CellPos) int {
	if !fb.inBounds(p) {
		panic(&BoundsError{Pos: p, Width: fb.width, Height: fb.height})
	}
	return p.Y*fb.width + p.X
}

// Write blends c into the cell at p by running average
// Panics with *BoundsError if p is outside the grid
func (fb *Framebuffer) Write(p CellPos, c RGB) {
	idx := fb.index(p)
	fb.cells[idx] = Blend(fb.cells[idx], c)
}

// At returns the cell at p
// Panics with *BoundsError if p is outside the grid
func (fb *Framebuffer) At(p CellPos) Cell {
	return fb.cells[fb.index(p)]
}

// Scale maps a normalized position to cell coordinates
// Truncates toward the low index; 1.0 maps exactly to the last index
func (fb *Framebuffer) Scale(p NormPos) CellPos {
	return CellPos{
		X: int(p.X * float64(fb.width-1)),
		Y: int(p.Y * float64(fb.height-1)),
	}
}

// Render folds row pairs into half-block cells and hands each pair to paint
// Order is strict scan order: top row pair first, left to right
func (fb *Framebuffer) Render(paint func(top, bottom RGB)) {
	for y := 0; y < fb.height; y += 2 {
		top := fb.cells[y*fb.width : (y+1)*fb.width]
		bottom := fb.cells[(y+1)*fb.width : (y+2)*fb.width]
		for x := 0; x < fb.width; x++ {
			paint(top[x].Color, bottom[x].Color)
		}
	}
}
