// @focus: #sys { term }
package terminal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrNoGeometry is returned when the terminal size is unknown or zero
var ErrNoGeometry = errors.New("terminal geometry unavailable")

// Size returns the column and row count of the terminal on fd
func Size(fd int) (cols, rows int, err error) {
	cols, rows, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrNoGeometry, err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrNoGeometry, cols, rows)
	}
	return cols, rows, nil
}

// IsTerminal returns true if f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// FileGeometry reports the size of the terminal attached to a file
type FileGeometry struct {
	File *os.File
}

// StdoutGeometry is the geometry provider for the process's standard output
var StdoutGeometry = FileGeometry{File: os.Stdout}

// Size returns the current column and row count
func (g FileGeometry) Size() (int, int, error) {
	return Size(int(g.File.Fd()))
}

// FixedGeometry is a geometry provider with constant dimensions
// Used when output is not a terminal
type FixedGeometry struct {
	Cols, Rows int
}

// Size returns the fixed dimensions, failing on non-positive values
func (g FixedGeometry) Size() (int, int, error) {
	if g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrNoGeometry, g.Cols, g.Rows)
	}
	return g.Cols, g.Rows, nil
}
