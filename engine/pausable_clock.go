package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock derives game time from a source clock minus accumulated pause time
// Grace, danger and cooldown windows all read this clock so a pause freezes them
type PausableClock struct {
	mu sync.RWMutex

	source TimeProvider

	isPaused        atomic.Bool
	pauseStartTime  time.Time     // Source time when the current pause began
	totalPausedTime time.Duration // Cumulative completed pause duration
}

// NewPausableClock wraps source, nil source uses the monotonic wall clock
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &PausableClock{source: source}
}

// Now returns current game time, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.pauseStartTime.Add(-pc.totalPausedTime)
	}
	return pc.source.Now().Add(-pc.totalPausedTime)
}

// RealTime returns source time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.source.Now()
}

// Pause stops game time advancement, no-op if already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.pauseStartTime = pc.source.Now()
	}
}

// Resume continues game time advancement, no-op if running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStartTime)
		pc.pauseStartTime = time.Time{}
	}
}

func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including an active pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() {
		total += pc.source.Now().Sub(pc.pauseStartTime)
	}
	return total
}
