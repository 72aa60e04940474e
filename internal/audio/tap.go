package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap passes a stream through unchanged while recording the most recent
// samples, so the analyser can look at what was just played.
type Tap struct {
	Source beep.Streamer

	mu     sync.RWMutex
	buffer [][2]float64
	next   int
	filled bool
}

// NewTap wraps src with a ring of size samples.
func NewTap(src beep.Streamer, size int) *Tap {
	return &Tap{
		Source: src,
		buffer: make([][2]float64, size),
	}
}

// Stream implements beep.Streamer.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.next] = samples[i]
			t.next++
			if t.next >= len(t.buffer) {
				t.next = 0
				t.filled = true
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

// Err implements beep.Streamer.
func (t *Tap) Err() error { return t.Source.Err() }

// Mono returns the last n samples down-mixed to mono, oldest first.
// Slots never written read as silence.
func (t *Tap) Mono(n int) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > len(t.buffer) {
		n = len(t.buffer)
	}
	out := make([]float64, n)
	idx := t.next
	for i := n - 1; i >= 0; i-- {
		idx--
		if idx < 0 {
			if !t.filled {
				break
			}
			idx = len(t.buffer) - 1
		}
		s := t.buffer[idx]
		out[i] = (s[0] + s[1]) / 2
	}
	return out
}
