//go:build !unix

package terminal

import "context"

// WatchResize is unsupported on this platform; the channel closes with ctx
func WatchResize(ctx context.Context, fd int) <-chan ResizeEvent {
	eventCh := make(chan ResizeEvent)
	go func() {
		<-ctx.Done()
		close(eventCh)
	}()
	return eventCh
}
