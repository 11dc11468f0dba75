// Package timing provides a frame-driven timer queue. Nothing here runs on
// its own goroutine: timers fire only from inside Advance, which the owner
// calls once per tick.
package timing

import (
	"sort"
	"time"
)

// Timer is a pending callback created by Scheduler.After
type Timer struct {
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the timer. It returns false if the timer already fired or
// was already stopped.
func (t *Timer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Scheduler orders callbacks on a virtual clock advanced by the caller
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers []*Timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time accumulated through Advance
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once at least d of virtual time has elapsed.
// A timer scheduled from within a firing callback never runs during the
// same Advance call, even with a zero delay.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{due: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by dt and fires every timer that was
// already scheduled and is now due, earliest first. It returns the number
// of callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}

	var due, keep []*Timer
	for _, t := range s.timers {
		switch {
		case t.stopped:
		case t.due <= s.now:
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	s.timers = keep

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})

	fired := 0
	for _, t := range due {
		// An earlier callback in this batch may have stopped it.
		if t.stopped {
			continue
		}
		t.fired = true
		t.fn()
		fired++
	}
	return fired
}

// Pending returns the number of timers waiting to fire
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}
