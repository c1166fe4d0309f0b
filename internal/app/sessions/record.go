package sessions

import (
	"fmt"
	"time"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/selection"
	"staybook/internal/domain/shared/daterange"
)

// Record is the storable form of a session. Dates are kept as calendar days so the
// zone survives stores that only keep offsets.
type Record struct {
	ID        string      `json:"id" bson:"_id"`
	ListingID string      `json:"listing_id" bson:"listing_id"`
	Window    []DayRecord `json:"window" bson:"window"`
	Selection StateRecord `json:"selection" bson:"selection"`
	Guests    int         `json:"guests" bson:"guests"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

type DayRecord struct {
	Date   string `json:"date" bson:"date"`
	Status string `json:"status" bson:"status"`
}

type StateRecord struct {
	Kind string `json:"kind" bson:"kind"`
	From string `json:"from,omitempty" bson:"from,omitempty"`
	To   string `json:"to,omitempty" bson:"to,omitempty"`
}

func ToRecord(s *Session) Record {
	rec := Record{
		ID:        s.ID,
		ListingID: string(s.ListingID),
		Window:    make([]DayRecord, 0, len(s.Window)),
		Guests:    s.Guests,
		CreatedAt: s.CreatedAt.UTC(),
		UpdatedAt: s.UpdatedAt.UTC(),
	}
	for _, info := range s.Window {
		rec.Window = append(rec.Window, DayRecord{Date: info.Date.Format(time.DateOnly), Status: string(info.Status)})
	}
	snap := selection.ToSnapshot(s.currentState())
	rec.Selection.Kind = string(snap.Kind)
	if snap.From != nil {
		rec.Selection.From = snap.From.Format(time.DateOnly)
	}
	if snap.To != nil {
		rec.Selection.To = snap.To.Format(time.DateOnly)
	}
	return rec
}

// FromRecord rebuilds a session with every date at midnight in loc.
func FromRecord(rec Record, loc *time.Location) (*Session, error) {
	s := &Session{
		ID:        rec.ID,
		ListingID: listings.ListingID(rec.ListingID),
		Window:    make([]availability.DateInfo, 0, len(rec.Window)),
		Guests:    rec.Guests,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	for _, day := range rec.Window {
		date, err := daterange.Parse(day.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("session %s window: %w", rec.ID, err)
		}
		status, err := availability.ParseStatus(day.Status)
		if err != nil {
			return nil, fmt.Errorf("session %s window: %w", rec.ID, err)
		}
		s.Window = append(s.Window, availability.DateInfo{Date: date, Status: status})
	}

	snap := selection.Snapshot{Kind: selection.Kind(rec.Selection.Kind)}
	if rec.Selection.From != "" {
		from, err := daterange.Parse(rec.Selection.From, loc)
		if err != nil {
			return nil, fmt.Errorf("session %s selection: %w", rec.ID, err)
		}
		snap.From = &from
	}
	if rec.Selection.To != "" {
		to, err := daterange.Parse(rec.Selection.To, loc)
		if err != nil {
			return nil, fmt.Errorf("session %s selection: %w", rec.ID, err)
		}
		snap.To = &to
	}
	state, err := selection.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("session %s selection: %w", rec.ID, err)
	}
	s.State = state
	return s, nil
}
