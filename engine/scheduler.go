package engine

import (
	"slices"
	"time"
)

type timer struct {
	id  int
	due time.Time
	fn  func()
}

// Scheduler holds deferred callbacks keyed to game time
// Not safe for concurrent use: owned by the goroutine that calls Game.Tick
type Scheduler struct {
	nextID int
	timers []timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After registers fn to run once game time reaches now+d, returns a handle for Cancel
func (s *Scheduler) After(now time.Time, d time.Duration, fn func()) int {
	s.nextID++
	s.timers = append(s.timers, timer{id: s.nextID, due: now.Add(d), fn: fn})
	return s.nextID
}

// Cancel removes a pending callback, returns false if it already ran or never existed
func (s *Scheduler) Cancel(id int) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = slices.Delete(s.timers, i, i+1)
			return true
		}
	}
	return false
}

// RunDue fires every callback whose deadline is not after now, earliest first
// Callbacks registered while running are deferred to the next call
func (s *Scheduler) RunDue(now time.Time) int {
	if len(s.timers) == 0 {
		return 0
	}

	var due []timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !now.Before(t.due) {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.timers = kept

	slices.SortStableFunc(due, func(a, b timer) int {
		return a.due.Compare(b.due)
	})
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of callbacks not yet fired
func (s *Scheduler) Pending() int {
	return len(s.timers)
}
