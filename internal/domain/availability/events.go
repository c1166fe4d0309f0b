package availability

import (
	"time"

	"staybook/internal/domain/shared/daterange"
)

type CalendarBlocked struct {
	ListingID string
	Range     daterange.DateRange
	Reason    BlockReason
	At        time.Time
}

func (e CalendarBlocked) EventName() string     { return "calendar.blocked" }
func (e CalendarBlocked) AggregateID() string   { return e.ListingID }
func (e CalendarBlocked) OccurredAt() time.Time { return e.At }

// WindowGenerated is recorded once per picker session when its window is built.
type WindowGenerated struct {
	SessionID   string
	ListingID   string
	Start       time.Time
	Days        int
	Selectable  int
	Unavailable int
	At          time.Time
}

func (e WindowGenerated) EventName() string     { return "availability.window_generated" }
func (e WindowGenerated) AggregateID() string   { return e.SessionID }
func (e WindowGenerated) OccurredAt() time.Time { return e.At }

// NewWindowGenerated summarizes window for analytics.
func NewWindowGenerated(sessionID, listingID string, window []DateInfo, at time.Time) WindowGenerated {
	ev := WindowGenerated{SessionID: sessionID, ListingID: listingID, Days: len(window), At: at}
	if len(window) > 0 {
		ev.Start = window[0].Date
	}
	for _, info := range window {
		if IsSelectable(info) {
			ev.Selectable++
		} else {
			ev.Unavailable++
		}
	}
	return ev
}
