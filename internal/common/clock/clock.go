package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/chapterplate/internal/common/clock Clock
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock.
// Location controls which calendar the times are reported in; meals are
// grouped by the chapter's local day, not UTC.
type DefaultClock struct {
	Location *time.Location
}

// New returns a system clock reporting times in loc (time.Local when nil)
func New(loc *time.Location) *DefaultClock {
	if loc == nil {
		loc = time.Local
	}
	return &DefaultClock{Location: loc}
}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
