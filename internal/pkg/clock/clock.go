package clock

import "time"

// Clock supplies "now" so services can be tested with a fixed instant.
type Clock interface {
	Now() time.Time
}

// System reads the server's wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}
