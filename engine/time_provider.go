package engine

import "time"

// TimeProvider abstracts the time source so tests can drive the simulation clock
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider returns wall time with a monotonic reading
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
