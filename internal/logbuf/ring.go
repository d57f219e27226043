// Package logbuf keeps the most recent log lines in memory so the terminal
// UI can show them while it owns the screen.
package logbuf

import (
	"bytes"
	"log/slog"
	"sync"
)

// Ring is a thread-safe buffer of the last N complete lines written to it.
// It implements io.Writer, so it can back an slog handler.
type Ring struct {
	mu      sync.Mutex
	lines   []string
	size    int
	start   int
	count   int
	written uint64
	partial []byte
}

// New creates a ring that keeps the last n lines. n < 1 is treated as 1.
func New(n int) *Ring {
	if n < 1 {
		n = 1
	}
	return &Ring{lines: make([]string, n), size: n}
}

// Write splits p on newlines. A trailing fragment without a newline is held
// until the rest of the line arrives.
func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := append(r.partial, p...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		r.push(string(bytes.TrimRight(buf[:i], "\r")))
		buf = buf[i+1:]
	}
	r.partial = append([]byte(nil), buf...)
	return len(p), nil
}

func (r *Ring) push(line string) {
	idx := (r.start + r.count) % r.size
	r.lines[idx] = line
	if r.count < r.size {
		r.count++
	} else {
		r.start = (r.start + 1) % r.size
	}
	r.written++
}

// Lines returns the stored lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, r.count)
	for i := range out {
		out[i] = r.lines[(r.start+i)%r.size]
	}
	return out
}

// Last returns up to n of the newest lines, oldest first.
func (r *Ring) Last(n int) []string {
	if n <= 0 {
		return nil
	}
	all := r.Lines()
	if n >= len(all) {
		return all
	}
	return all[len(all)-n:]
}

// Written returns how many complete lines have ever been written.
// It changes whenever the visible contents do.
func (r *Ring) Written() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written
}

// Handler returns a text slog handler that writes into the ring.
func (r *Ring) Handler(level slog.Leveler) slog.Handler {
	return slog.NewTextHandler(r, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// The pane is narrow; wall-clock time adds little there.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
}
