package clock

import "time"

// Clock abstracts time.Now so that components depending on wall-clock time
// (response timestamps, the date parser's reference year) can be pinned in
// tests.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the real current time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}
