// Package timeutil abstracts wall-clock access and timer creation so the
// schedulers can be driven by a fake clock in tests.
package timeutil

import "time"

// Clock supplies the current instant and cancellable one-shot timers.
// It is the only source of "now" used by scheduling code.
type Clock interface {
	// Now returns the current time in the local time zone.
	Now() time.Time

	// NewTimer returns a timer that delivers one tick at or after d from now.
	NewTimer(d time.Duration) Timer
}

// Timer is a cancellable one-shot wake-up.
type Timer interface {
	// C returns the channel the tick is delivered on.
	C() <-chan time.Time

	// Stop prevents the tick from being delivered. It reports whether the
	// timer was still pending.
	Stop() bool
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTimer(d time.Duration) Timer {
	return &realTimer{t: time.NewTimer(d)}
}

type realTimer struct {
	t *time.Timer
}

func (rt *realTimer) C() <-chan time.Time { return rt.t.C }
func (rt *realTimer) Stop() bool          { return rt.t.Stop() }
