package framebuffer

import (
	"fmt"
	"math"
)

// MaxDensity is the write count at which a cell stops accepting colour
const MaxDensity = math.MaxUint8

// Cell is a running colour average and the number of writes folded into it
// Density 0 means never written
type Cell struct {
	Color   RGB
	Density uint8
}

// Saturated returns true once the cell ignores further writes
func (c Cell) Saturated() bool {
	return c.Density == MaxDensity
}

// Blend folds color into c, weighting the existing colour by its density
// A saturated cell is returned unchanged
func Blend(c Cell, color RGB) Cell {
	if c.Saturated() {
		return c
	}
	d := uint32(c.Density)
	return Cell{
		Color: RGB{
			R: averageChannel(c.Color.R, color.R, d),
			G: averageChannel(c.Color.G, color.G, d),
			B: averageChannel(c.Color.B, color.B, d),
		},
		Density: c.Density + 1,
	}
}

// averageChannel computes (old*d + v) / (d+1) in 32 bits and narrows the result
func averageChannel(old, v uint8, d uint32) uint8 {
	sum := uint32(old)*d + uint32(v)
	avg := sum / (d + 1)
	if avg > math.MaxUint8 {
		panic(&NarrowingError{Value: avg})
	}
	return uint8(avg)
}

// BoundsError reports a cell write or read outside the grid
type BoundsError struct {
	Pos    CellPos
	Width  int
	Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("framebuffer: cell (%d,%d) outside %dx%d grid", e.Pos.X, e.Pos.Y, e.Width, e.Height)
}

// NarrowingError reports an averaged channel that does not fit in 8 bits
type NarrowingError struct {
	Value uint32
}

func (e *NarrowingError) Error() string {
	return fmt.Sprintf("framebuffer: channel average %d overflows uint8", e.Value)
}
