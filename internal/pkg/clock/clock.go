package clock

import "time"

// Clock is an injectable time source. The reporting service reads the
// current instant through it instead of calling time.Now directly, so
// tests can pin "today" to a known value.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// NewRealClock returns a Clock backed by the system time.
func NewRealClock() Clock {
	return realClock{}
}

// Fixed is a Clock that always returns the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}
