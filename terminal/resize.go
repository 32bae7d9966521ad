package terminal

// ResizeEvent represents a terminal resize in columns and rows
type ResizeEvent struct {
	Width  int
	Height int
}
