package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/avalon/internal/common/clock Clock
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time in UTC
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}
