package launcher

import (
	"io"
	"sync"
)

// stdinBroker forwards terminal input to the active pty child. A single
// long-lived reader owns the input stream; children attach and detach as
// sinks across restart cycles, and input arriving while no sink is
// attached is dropped. This keeps respawned children from competing for
// reads on the same descriptor.
type stdinBroker struct {
	mu   sync.Mutex
	sink io.Writer
}

func (b *stdinBroker) attach(w io.Writer) {
	b.mu.Lock()
	b.sink = w
	b.mu.Unlock()
}

// detach clears the sink if w is still the active one, so a late detach
// cannot drop a newer child's attachment.
func (b *stdinBroker) detach(w io.Writer) {
	b.mu.Lock()
	if b.sink == w {
		b.sink = nil
	}
	b.mu.Unlock()
}

// pump reads r until EOF or error, forwarding to the current sink.
func (b *stdinBroker) pump(r io.Reader) {
	buf := make([]byte, 1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.mu.Lock()
			sink := b.sink
			b.mu.Unlock()

			if sink != nil {
				_, _ = sink.Write(buf[:n])
			}
		}
		if err != nil {
			return
		}
	}
}
