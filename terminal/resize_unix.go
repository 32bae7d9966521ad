//go:build unix

package terminal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// WatchResize delivers the new terminal size of fd after every SIGWINCH
// Events are coalesced: an unconsumed event is replaced by the latest size
// The channel is closed when ctx is done
func WatchResize(ctx context.Context, fd int) <-chan ResizeEvent {
	sigCh := make(chan os.Signal, 1)
	eventCh := make(chan ResizeEvent, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		defer close(eventCh)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
				ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
				if err != nil || ws.Col == 0 || ws.Row == 0 {
					continue
				}
				ev := ResizeEvent{Width: int(ws.Col), Height: int(ws.Row)}
				// Non-blocking send, drop old event if not consumed
				select {
				case eventCh <- ev:
				default:
					select {
					case <-eventCh:
					default:
					}
					eventCh <- ev
				}
			}
		}
	}()

	return eventCh
}
