package game

import (
	"sync"
	"time"

	"github.com/iburimskiy/papermap-live/internal/anim"
)

// frameTap records the last N applied animation frames into a ring buffer
// so the HUD can show the effective update rate and camera pose.
type frameTap struct {
	buffer    []anim.Frame
	nextIndex int
	count     int
	mu        sync.RWMutex
}

func newFrameTap(ringSize int) *frameTap {
	if ringSize < 1 {
		ringSize = 1
	}
	return &frameTap{buffer: make([]anim.Frame, ringSize)}
}

// record is the controller observer
func (t *frameTap) record(f anim.Frame) {
	t.mu.Lock()
	t.buffer[t.nextIndex] = f
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.count < len(t.buffer) {
		t.count++
	}
	t.mu.Unlock()
}

func (t *frameTap) reset() {
	t.mu.Lock()
	t.nextIndex, t.count = 0, 0
	t.mu.Unlock()
}

// snapshot returns up to the last n frames (most recent last).
func (t *frameTap) snapshot(n int) []anim.Frame {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > t.count {
		n = t.count
	}
	out := make([]anim.Frame, 0, n)
	// Walk backwards from nextIndex - 1
	idx := t.nextIndex - 1
	if idx < 0 {
		idx = len(t.buffer) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, t.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// latest returns the most recent frame.
func (t *frameTap) latest() (anim.Frame, bool) {
	f := t.snapshot(1)
	if len(f) == 0 {
		return anim.Frame{}, false
	}
	return f[0], true
}

// rate is the number of frames applied per second over the window ending at
// now.
func (t *frameTap) rate(now, window time.Duration) float64 {
	if window <= 0 {
		return 0
	}
	frames := t.snapshot(len(t.buffer))
	n := 0
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].At <= now-window {
			break
		}
		n++
	}
	return float64(n) / window.Seconds()
}
