package focus

import (
	"sync"
	"time"
)

// FrameScheduler defers a callback by one animation frame. Schedule returns
// a cancel function; calling it before the frame fires drops the callback.
type FrameScheduler interface {
	Schedule(fn func()) (cancel func())
}

// DefaultFrameInterval approximates one frame at 60fps.
const DefaultFrameInterval = 16 * time.Millisecond

// TimerScheduler fires callbacks on a timer, one Interval after Schedule.
type TimerScheduler struct {
	Interval time.Duration
}

var _ FrameScheduler = (*TimerScheduler)(nil)

// NewTimerScheduler returns a scheduler ticking at DefaultFrameInterval.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{Interval: DefaultFrameInterval}
}

// Schedule implements FrameScheduler.
func (s *TimerScheduler) Schedule(fn func()) func() {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	timer := time.AfterFunc(interval, fn)
	return func() { timer.Stop() }
}

// ManualScheduler queues callbacks until Fire is called. It exists for
// tests and for hosts that pump their own event loop.
type ManualScheduler struct {
	mu    sync.Mutex
	queue []*manualFrame
}

type manualFrame struct {
	fn func()
}

var _ FrameScheduler = (*ManualScheduler)(nil)

// Schedule implements FrameScheduler.
func (s *ManualScheduler) Schedule(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &manualFrame{fn: fn}
	s.queue = append(s.queue, f)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		f.fn = nil
	}
}

// Fire runs the oldest pending callback, skipping cancelled slots.
// It reports whether one ran.
func (s *ManualScheduler) Fire() bool {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return false
		}
		f := s.queue[0]
		s.queue = s.queue[1:]
		fn := f.fn
		s.mu.Unlock()
		if fn != nil {
			fn()
			return true
		}
	}
}

// Flush fires callbacks until the queue drains, returning how many ran.
func (s *ManualScheduler) Flush() int {
	n := 0
	for s.Fire() {
		n++
	}
	return n
}

// Pending reports how many callbacks are queued, cancelled slots included.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
