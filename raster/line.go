// Package raster draws points and straight segments onto a framebuffer
//
// Positions are given in normalized [0,1] space and scaled to cells by the
// target. Cells are written through the target's accumulating Write, so
// repeated visits to one cell blend rather than overwrite.
package raster

import (
	"github.com/lixenwraith/termdraw/framebuffer"
)

// Target is the framebuffer surface the rasterizer writes through
type Target interface {
	Scale(p framebuffer.NormPos) framebuffer.CellPos
	Write(p framebuffer.CellPos, c framebuffer.RGB)
}

// Dot writes a single cell at p
func Dot(t Target, p framebuffer.NormPos, c framebuffer.RGB) {
	t.Write(t.Scale(p), c)
}

// Line writes every cell of the segment from one normalized point to another
func Line(t Target, from, to framebuffer.NormPos, c framebuffer.RGB) {
	walk(t.Scale(from), t.Scale(to), func(p framebuffer.CellPos) {
		t.Write(p, c)
	})
}

// Polyline draws consecutive segments through pts
// Shared vertices are written by both adjoining segments
func Polyline(t Target, pts []framebuffer.NormPos, c framebuffer.RGB) {
	if len(pts) == 1 {
		Dot(t, pts[0], c)
		return
	}
	for i := 1; i < len(pts); i++ {
		Line(t, pts[i-1], pts[i], c)
	}
}

// Cells returns the cell sequence Line would write, without writing
func Cells(t Target, from, to framebuffer.NormPos) []framebuffer.CellPos {
	var out []framebuffer.CellPos
	walk(t.Scale(from), t.Scale(to), func(p framebuffer.CellPos) {
		out = append(out, p)
	})
	return out
}

// walk visits cells from start to end inclusive, stepping the driving axis one
// cell at a time and interpolating the other with truncating division
// The driving axis is the one with the larger delta, y on a tie
func walk(start, end framebuffer.CellPos, visit func(framebuffer.CellPos)) {
	dx, sx := delta(start.X, end.X)
	dy, sy := delta(start.Y, end.Y)

	if dx == 0 && dy == 0 {
		visit(start)
		return
	}

	if dx > dy {
		for i := 0; i <= dx; i++ {
			visit(framebuffer.CellPos{
				X: start.X + sx*i,
				Y: start.Y + sy*(dy*i/dx),
			})
		}
		return
	}

	for i := 0; i <= dy; i++ {
		visit(framebuffer.CellPos{
			X: start.X + sx*(dx*i/dy),
			Y: start.Y + sy*i,
		})
	}
}

// delta returns the unsigned distance from a to b and the direction sign
func delta(a, b int) (int, int) {
	if b < a {
		return a - b, -1
	}
	return b - a, 1
}
