package adapter

import "time"

// Clock defines an interface for time operations to enable mocking.
type Clock interface {
	Now() time.Time
	// NowNanos returns the current instant as nanoseconds since the Unix
	// epoch, the resolution all registry timestamps use.
	NowNanos() uint64
	Since(t time.Time) time.Duration
	Unix(sec int64, nsec int64) time.Time
}

// RealClock implements Clock using the standard time package
type RealClock struct{}

// NewClock creates a new real clock implementation
func NewClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) NowNanos() uint64 {
	return uint64(time.Now().UnixNano())
}

func (c *RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (c *RealClock) Unix(sec int64, nsec int64) time.Time {
	return time.Unix(sec, nsec)
}
