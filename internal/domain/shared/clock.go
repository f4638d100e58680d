package shared

import "time"

// Clock is an abstraction for wall-clock time, allowing timestamps to be fixed in tests.
// The day engine itself never reads the clock; only persistence and ledger records do.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// FixedClock always reports the same instant until moved with Set
type FixedClock struct {
	At time.Time
}

func (f *FixedClock) Now() time.Time {
	return f.At
}

// Set moves the clock to t
func (f *FixedClock) Set(t time.Time) {
	f.At = t
}

// NewFixedClock creates a FixedClock at t
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{At: t}
}
