package monitoring

import (
	"time"

	"github.com/openmoveio/posestream/internal/timeutil"
)

// Throttle suppresses repeated diagnostics, allowing at most one per rolling
// window. Sustained failure paths (an oversize frame every tick, say) log
// once per window instead of flooding the console.
//
// Throttle is used from the single-threaded tick loop and is not safe for
// concurrent use.
type Throttle struct {
	clock    timeutil.Clock
	window   time.Duration
	last     time.Time
	hasFired bool

	// suppressed counts events swallowed since the last emitted line.
	suppressed int
}

// NewThrottle creates a throttle emitting at most once per window.
func NewThrottle(clock timeutil.Clock, window time.Duration) *Throttle {
	if window <= 0 {
		window = time.Second
	}
	return &Throttle{clock: clock, window: window}
}

// Logf logs through the package logger if the window has elapsed since the
// last emitted line, otherwise counts the event as suppressed. When a line
// is emitted after suppression, the suppressed count is appended.
func (t *Throttle) Logf(format string, v ...interface{}) {
	now := t.clock.Now()
	if t.hasFired && now.Sub(t.last) < t.window {
		t.suppressed++
		return
	}
	if t.suppressed > 0 {
		Logf(format+" (%d similar suppressed)", append(v, t.suppressed)...)
	} else {
		Logf(format, v...)
	}
	t.last = now
	t.hasFired = true
	t.suppressed = 0
}
