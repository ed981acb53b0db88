package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze "today" via SetClock.
// Only Today reads it; predictions themselves never depend on wall time.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Today returns the current calendar day as observed in loc. A nil loc means UTC.
func Today(loc *time.Location) CalendarDate {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(clock.Now().In(loc))
}
