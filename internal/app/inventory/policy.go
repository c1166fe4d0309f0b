package inventory

import (
	"errors"
	"time"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/shared/daterange"
)

// MaxWindowDays bounds a single window request.
const MaxWindowDays = 90

var ErrWindowSize = errors.New("inventory: window size out of range")

// Policy fills in defaults for window requests.
type Policy struct {
	Location *time.Location
	Days     int
	// FixedStart pins the first date of every default window; zero means today.
	FixedStart time.Time
	Now        func() time.Time
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func (p Policy) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Start returns the first date of a window, midnight-aligned in the policy location.
func (p Policy) Start(requested time.Time) time.Time {
	switch {
	case !requested.IsZero():
		return daterange.Day(requested, p.location())
	case !p.FixedStart.IsZero():
		return daterange.Day(p.FixedStart, p.location())
	default:
		return daterange.Day(p.now(), p.location())
	}
}

// Size returns the window length; zero asks for the default.
func (p Policy) Size(requested int) (int, error) {
	if requested == 0 {
		if p.Days > 0 {
			return p.Days, nil
		}
		return availability.DefaultWindowDays, nil
	}
	if requested < 0 || requested > MaxWindowDays {
		return 0, ErrWindowSize
	}
	return requested, nil
}
