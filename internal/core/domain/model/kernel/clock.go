package kernel

import "time"

// Clock is the time source used by handlers and policies.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC at millisecond precision, which both
// durable stores and every client round-trip without loss.
type SystemClock struct{}

// Now returns the current UTC time truncated to the millisecond.
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// ClockFunc adapts a plain function to the Clock interface.
//
// Example:
//
//	fixed := time.Date(2025, time.January, 2, 12, 0, 0, 0, time.UTC)
//	clock := kernel.ClockFunc(func() time.Time { return fixed })
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}
