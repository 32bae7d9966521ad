// Package canvas is the drawing surface exposed to entry points.
//
// A Canvas owns one framebuffer sized from a geometry provider and draws it
// through a painter. Geometry is read once at construction and again only on
// an explicit Recalibrate; the canvas never polls the terminal.
package canvas

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/termdraw/framebuffer"
	"github.com/lixenwraith/termdraw/raster"
	"github.com/lixenwraith/termdraw/terminal"
)

// Geometry supplies the terminal size in columns and rows
type Geometry interface {
	Size() (cols, rows int, err error)
}

// Option configures a Canvas
type Option func(*Canvas)

// WithReservedRow keeps the last terminal row free for the cursor or a prompt
func WithReservedRow(reserve bool) Option {
	return func(c *Canvas) { c.reserveRow = reserve }
}

// WithLogger sets the logger for recalibration and render diagnostics
func WithLogger(l *log.Logger) Option {
	return func(c *Canvas) { c.logger = l }
}

// Canvas draws normalized geometry into a half-block framebuffer
// Not safe for concurrent use
type Canvas struct {
	geo        Geometry
	painter    terminal.Painter
	fb         *framebuffer.Framebuffer
	reserveRow bool
	logger     *log.Logger
}

// New reads the current geometry and builds the framebuffer
func New(geo Geometry, painter terminal.Painter, opts ...Option) (*Canvas, error) {
	c := &Canvas{
		geo:     geo,
		painter: painter,
		fb:      &framebuffer.Framebuffer{},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Recalibrate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Recalibrate re-reads geometry and rebuilds the framebuffer, dropping all content
func (c *Canvas) Recalibrate() error {
	cols, rows, err := c.geo.Size()
	if err != nil {
		return fmt.Errorf("read geometry: %w", err)
	}

	width, height := Dimensions(cols, rows, c.reserveRow)
	if err := c.fb.Recalibrate(width, height); err != nil {
		return fmt.Errorf("terminal %dx%d: %w", cols, rows, err)
	}

	c.logger.Debug("recalibrated", "cols", cols, "rows", rows, "width", width, "height", height)
	return nil
}

// Dimensions derives the framebuffer size from a terminal size
// Each terminal row holds two cells; a reserved row is excluded
func Dimensions(cols, rows int, reserveRow bool) (width, height int) {
	if reserveRow {
		rows--
	}
	return cols, 2 * rows
}

// Width returns the framebuffer width in cells
func (c *Canvas) Width() int { return c.fb.Width() }

// Height returns the framebuffer height in cells
func (c *Canvas) Height() int { return c.fb.Height() }

// Framebuffer returns the backing framebuffer
func (c *Canvas) Framebuffer() *framebuffer.Framebuffer { return c.fb }

// Clear resets all cells to black
func (c *Canvas) Clear() {
	c.fb.Clear()
}

// Dot blends color into the cell at a normalized position
func (c *Canvas) Dot(p framebuffer.NormPos, color terminal.RGB) {
	raster.Dot(c.fb, p, color)
}

// Line blends color into every cell of a segment between normalized positions
func (c *Canvas) Line(from, to framebuffer.NormPos, color terminal.RGB) {
	raster.Line(c.fb, from, to, color)
}

// Polyline draws connected segments through pts
func (c *Canvas) Polyline(pts []framebuffer.NormPos, color terminal.RGB) {
	raster.Polyline(c.fb, pts, color)
}

// Render paints the whole framebuffer in one frame
func (c *Canvas) Render() error {
	if err := c.painter.Begin(c.fb.Width(), c.fb.Rows()); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	c.fb.Render(c.painter.Paint)
	if err := c.painter.End(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}

	c.logger.Debug("rendered", "cells", c.fb.Width()*c.fb.Rows())
	return nil
}
