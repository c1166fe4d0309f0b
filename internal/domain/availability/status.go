package availability

import (
	"fmt"
	"time"
)

// Status classifies a calendar date as fully, partially or not bookable.
type Status string

const (
	Available   Status = "available"
	Limited     Status = "limited"
	Unavailable Status = "unavailable"
)

// Statuses lists every status in a stable order.
var Statuses = [...]Status{Available, Limited, Unavailable}

func (s Status) Valid() bool {
	switch s {
	case Available, Limited, Unavailable:
		return true
	default:
		return false
	}
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("availability: unknown status %q", raw)
	}
	return s, nil
}

// DateInfo is one entry of a generated window. It is never mutated after generation.
type DateInfo struct {
	Date   time.Time
	Status Status
}

// IsSelectable reports whether a user may pick the date. Limited dates stay selectable.
func IsSelectable(info DateInfo) bool {
	return info.Status != Unavailable
}

// SelectFirstAvailable returns the earliest selectable entry of window.
// The boolean is false when every date is unavailable; callers disable selection then.
func SelectFirstAvailable(window []DateInfo) (DateInfo, bool) {
	for _, info := range window {
		if IsSelectable(info) {
			return info, true
		}
	}
	return DateInfo{}, false
}
