// Package schedule runs cancellable periodic tasks on the frame clock.
//
// Tasks are advanced explicitly with the frame delta, so they fire on the
// same goroutine as the rest of the frame and need no locking.
package schedule

import "time"

// Periodic calls a function once per elapsed period while running.
type Periodic struct {
	period  time.Duration
	elapsed time.Duration
	fn      func()
	running bool
	fired   uint64
}

// NewPeriodic creates a stopped task with the given period.
func NewPeriodic(period time.Duration) *Periodic {
	if period <= 0 {
		period = time.Millisecond
	}
	return &Periodic{period: period}
}

// Period returns the interval between calls.
func (p *Periodic) Period() time.Duration {
	return p.period
}

// Start begins calling fn every period. Starting a running task restarts
// it with the new function and a fresh interval.
func (p *Periodic) Start(fn func()) {
	p.fn = fn
	p.elapsed = 0
	p.fired = 0
	p.running = fn != nil
}

// Cancel stops the task. No further calls happen once Cancel returns.
// It reports whether the task was running.
func (p *Periodic) Cancel() bool {
	was := p.running
	p.running = false
	p.fn = nil
	p.elapsed = 0
	return was
}

// Running reports whether the task is active.
func (p *Periodic) Running() bool {
	return p.running
}

// Fired returns the number of calls since the last Start.
func (p *Periodic) Fired() uint64 {
	return p.fired
}

// Advance moves the task clock forward by dt and makes every call that
// became due. It returns the number of calls made.
func (p *Periodic) Advance(dt time.Duration) int {
	if !p.running || dt <= 0 {
		return 0
	}

	p.elapsed += dt
	calls := 0
	for p.running && p.elapsed >= p.period {
		p.elapsed -= p.period
		p.fired++
		calls++
		p.fn()
	}
	return calls
}
