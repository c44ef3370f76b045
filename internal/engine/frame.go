package engine

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates one rendering frame at 60fps. It is the
// batching granularity of the consistency layer.
const DefaultFrameInterval = 16 * time.Millisecond

// DefaultMinRefreshInterval is the minimum interval between topology
// re-evaluations triggered through Refresh.
const DefaultMinRefreshInterval = 4 * time.Millisecond

// FrameScheduler schedules one callback for the next rendering frame. The
// returned cancel function must prevent the callback from firing if called
// before the frame tick.
type FrameScheduler interface {
	Schedule(fn func()) (cancel func())
}

// TimerScheduler is the FrameScheduler for hosts without a real frame loop.
// It fires callbacks after a fixed interval on a timer goroutine.
type TimerScheduler struct {
	interval time.Duration
}

// NewTimerScheduler returns a TimerScheduler with the given frame interval.
// A zero interval falls back to DefaultFrameInterval.
func NewTimerScheduler(interval time.Duration) *TimerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TimerScheduler{interval: interval}
}

// Schedule implements FrameScheduler.
func (t *TimerScheduler) Schedule(fn func()) func() {
	timer := time.AfterFunc(t.interval, fn)
	return func() { timer.Stop() }
}

// ManualScheduler is a FrameScheduler driven explicitly by the caller. Tests
// use it to control exactly when a frame boundary happens.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*frameEntry
}

type frameEntry struct {
	fn        func()
	cancelled bool
}

// Schedule implements FrameScheduler.
func (m *ManualScheduler) Schedule(fn func()) func() {
	entry := &frameEntry{fn: fn}
	m.mu.Lock()
	m.pending = append(m.pending, entry)
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		entry.cancelled = true
		m.mu.Unlock()
	}
}

// Fire runs and clears every pending non-cancelled frame callback, simulating
// one frame tick.
func (m *ManualScheduler) Fire() {
	m.mu.Lock()
	entries := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, entry := range entries {
		if !entry.cancelled {
			entry.fn()
		}
	}
}

// Pending reports how many callbacks are waiting for the next tick.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, entry := range m.pending {
		if !entry.cancelled {
			n++
		}
	}
	return n
}
