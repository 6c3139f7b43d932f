// Package schedule turns the configured "HH:MM" school day boundaries
// into concrete instants and computes lateness against them.
package schedule

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")

// ParseTimeOfDay anchors an "HH:MM" wall-clock time onto day's calendar
// date, in day's location, with seconds and nanoseconds zeroed.
func ParseTimeOfDay(s string, day time.Time) (time.Time, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, day.Location()), nil
}

// LatenessMinutes returns the rounded whole-minute lateness of event
// relative to ref. ok is false when event is at or before ref.
func LatenessMinutes(ref, event time.Time) (minutes int, ok bool) {
	if !event.After(ref) {
		return 0, false
	}
	return int(math.Round(event.Sub(ref).Minutes())), true
}

// FormatLateness renders a lateness in minutes as a human-readable
// sentence fragment: "1 hour 30 minutes", "45 minutes", "2 hours".
// Callers only invoke it for minutes >= 1.
func FormatLateness(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours > 0 && mins > 0:
		return pluralize(hours, "hour") + " " + pluralize(mins, "minute")
	case hours > 0:
		return pluralize(hours, "hour")
	default:
		return pluralize(mins, "minute")
	}
}

func pluralize(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}
