package terminal

import (
	"bufio"
	"io"
)

// PixelGlyph is the upper half block: foreground paints the top cell, background the bottom
const PixelGlyph = '▀'

// Painter receives half-block cells in strict scan order
// Begin and End bracket one full frame of width × rows calls to Paint
type Painter interface {
	Begin(width, rows int) error
	Paint(top, bottom RGB)
	End() error
}

// ANSIPainter emits half-block cells as SGR escape sequences
// Every cell carries its own color pair and is followed by an attribute reset
type ANSIPainter struct {
	// Mode selects 24-bit or nearest 256-palette color parameters
	Mode ColorMode

	// Inline writes rows as plain lines without cursor positioning
	// Used when output is not a terminal or should remain in scrollback
	Inline bool

	writer *bufio.Writer
	width  int
	rows   int
	col    int
	row    int
}

// NewANSIPainter creates a painter writing to w through a buffered writer
func NewANSIPainter(w io.Writer, mode ColorMode) *ANSIPainter {
	return &ANSIPainter{
		Mode:   mode,
		writer: bufio.NewWriterSize(w, 65536),
	}
}

// Begin starts a frame, homing the cursor and disabling auto-wrap unless inline
func (p *ANSIPainter) Begin(width, rows int) error {
	p.width = width
	p.rows = rows
	p.col = 0
	p.row = 0

	if !p.Inline {
		p.writer.Write(csiCursorHide)
		p.writer.Write(csiAutoWrapOff)
		p.writer.Write(csiHome)
	}
	return nil
}

// Paint writes one half-block cell and advances to the next row at the right edge
func (p *ANSIPainter) Paint(top, bottom RGB) {
	w := p.writer

	w.Write(csi)
	writeColor(w, 38, top, p.Mode)
	w.WriteByte(';')
	writeColor(w, 48, bottom, p.Mode)
	w.WriteByte('m')
	w.WriteRune(PixelGlyph)
	w.Write(csiSGR0)

	p.col++
	if p.col < p.width {
		return
	}
	p.col = 0
	p.row++

	switch {
	case p.Inline:
		w.WriteByte('\n')
	case p.row < p.rows:
		w.Write(crlf)
	}
}

// End restores terminal modes and flushes the frame
// Returns the first write error of the frame, if any
func (p *ANSIPainter) End() error {
	if !p.Inline {
		p.writer.Write(csiAutoWrapOn)
		p.writer.Write(csiCursorShow)
	}
	return p.writer.Flush()
}
