package assistant

import (
	"io"
	"sync"
	"time"
)

// revealChunk is how many runes each reveal step appends.
const revealChunk = 8

// Revealer writes reply text incrementally, the way the web chat widget
// animated responses. Each conversation turn takes a fresh token; a new
// turn makes every older reveal a no-op from its next step onward.
type Revealer struct {
	mu   sync.Mutex
	turn uint64
}

// Begin starts a new turn and returns its token. Any reveal holding an
// older token stops at its next step.
func (r *Revealer) Begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turn++
	return r.turn
}

// Stale reports whether the token belongs to a superseded turn.
func (r *Revealer) Stale(token uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return token != r.turn
}

// Reveal writes text to w in small chunks, sleeping interval between
// steps. It stops early, without error, when the token goes stale.
func (r *Revealer) Reveal(token uint64, w io.Writer, text string, interval time.Duration) error {
	runes := []rune(text)
	for start := 0; start < len(runes); start += revealChunk {
		if r.Stale(token) {
			return nil
		}
		end := start + revealChunk
		if end > len(runes) {
			end = len(runes)
		}
		if _, err := io.WriteString(w, string(runes[start:end])); err != nil {
			return err
		}
		if end < len(runes) {
			time.Sleep(interval)
		}
	}
	return nil
}
