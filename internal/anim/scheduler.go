package anim

import "time"

// FrameID identifies a scheduled frame callback. Zero means none.
type FrameID uint64

// FrameFunc receives a monotonic timestamp.
type FrameFunc func(now time.Duration)

// Scheduler is the host's per-frame callback mechanism.
type Scheduler interface {
	RequestFrame(cb FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type pendingFrame struct {
	id FrameID
	cb FrameFunc
}

// FrameScheduler queues callbacks until the next Fire, which the host calls
// once per tick. Callbacks requested during Fire run on the following tick.
// Not safe for concurrent use.
type FrameScheduler struct {
	lastID  FrameID
	pending []pendingFrame
	firing  []pendingFrame
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

func (s *FrameScheduler) RequestFrame(cb FrameFunc) FrameID {
	s.lastID++
	s.pending = append(s.pending, pendingFrame{id: s.lastID, cb: cb})
	return s.lastID
}

func (s *FrameScheduler) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i, p := range s.pending {
		if p.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
	// cancelled from inside a sibling callback of the current batch
	for i := range s.firing {
		if s.firing[i].id == id {
			s.firing[i].cb = nil
			return
		}
	}
}

// Pending reports how many callbacks wait for the next Fire.
func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}

// Fire runs every callback queued before the call.
func (s *FrameScheduler) Fire(now time.Duration) {
	s.firing, s.pending = s.pending, nil
	for i := range s.firing {
		cb := s.firing[i].cb
		s.firing[i].cb = nil
		if cb != nil {
			cb(now)
		}
	}
	s.firing = nil
}
