// Package schedule gates frame emission to a configured rate.
package schedule

import (
	"time"

	"github.com/openmoveio/posestream/internal/timeutil"
)

// DefaultRateHz is used when the configured rate is zero or negative.
const DefaultRateHz = 30

// Scheduler is a per-adapter wall-clock gate limiting emission to a
// configured rate, independent of the host's render rate.
//
// There is no catch-up bursting: if the host stalls across several periods,
// the next emission is synced to "now" rather than to the missed schedule,
// so a slowdown never produces a burst of back-to-back frames.
type Scheduler struct {
	period   time.Duration
	nextEmit time.Time
	primed   bool
}

// New creates a scheduler for the given rate. A rate of zero or below gets
// the implicit default of 30 Hz.
func New(rateHz int) *Scheduler {
	if rateHz <= 0 {
		rateHz = DefaultRateHz
	}
	return &Scheduler{period: time.Duration(float64(time.Second) / float64(rateHz))}
}

// Period returns the emission interval.
func (s *Scheduler) Period() time.Duration { return s.period }

// ShouldEmit reports whether the clock has reached the next eligible
// emission time. The first call is always eligible.
func (s *Scheduler) ShouldEmit(now time.Time) bool {
	if !s.primed {
		return true
	}
	return !now.Before(s.nextEmit)
}

// MarkEmitted advances the next eligible time by one period. The advance is
// anchored to the schedule so host-tick quantization does not erode the
// rate, except after a stall of more than one period, where the schedule is
// resynced to now so the missed slots are never replayed as a burst.
func (s *Scheduler) MarkEmitted(now time.Time) {
	next := s.nextEmit.Add(s.period)
	if !s.primed || !next.After(now) {
		next = now.Add(s.period)
	}
	s.nextEmit = next
	s.primed = true
}

// Gate combines ShouldEmit and MarkEmitted: it returns true and advances the
// schedule when an emission is due.
func (s *Scheduler) Gate(clock timeutil.Clock) bool {
	now := clock.Now()
	if !s.ShouldEmit(now) {
		return false
	}
	s.MarkEmitted(now)
	return true
}
