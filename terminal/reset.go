package terminal

import (
	"io"
	"os"
)

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery when a frame may have been cut off mid-sequence
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiCursorShow)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
