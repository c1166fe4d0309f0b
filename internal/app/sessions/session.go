// Package sessions keeps picker sessions: the window generated once for a visitor and the
// selection they are building on top of it.
package sessions

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/selection"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/events"
)

var (
	ErrSessionNotFound   = errors.New("sessions: session not found")
	ErrDateOutsideWindow = errors.New("sessions: date is outside the offered window")
	ErrNoAvailability    = errors.New("sessions: no selectable date in window")
	ErrInvalidGuests     = errors.New("sessions: guest count out of range")
)

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

type Session struct {
	ID        string
	ListingID listings.ListingID
	Window    []availability.DateInfo
	State     selection.State
	Guests    int
	CreatedAt time.Time
	UpdatedAt time.Time
	events.EventRecorder
}

// New opens a session over an already generated window.
func New(id string, listingID listings.ListingID, window []availability.DateInfo, now time.Time) *Session {
	s := &Session{
		ID:        id,
		ListingID: listingID,
		Window:    append([]availability.DateInfo(nil), window...),
		State:     selection.None{},
		Guests:    1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Record(availability.NewWindowGenerated(id, string(listingID), s.Window, now))
	return s
}

// Lookup finds the window entry for date.
func (s *Session) Lookup(date time.Time) (availability.DateInfo, bool) {
	for _, info := range s.Window {
		if daterange.DaysBetween(info.Date, date) == 0 {
			return info, true
		}
	}
	return availability.DateInfo{}, false
}

// Pick applies a user-chosen date. Check-out may fall on the day after the window,
// since the last offered night ends there.
func (s *Session) Pick(date time.Time, now time.Time) error {
	info, ok := s.Lookup(date)
	if !ok {
		if !s.isCheckoutAfterWindow(date) {
			return ErrDateOutsideWindow
		}
		info = availability.DateInfo{Date: daterange.AddDays(s.Window[len(s.Window)-1].Date, 1), Status: availability.Available}
	}
	next, err := selection.PickInfo(s.currentState(), info)
	if err != nil {
		return err
	}
	s.State = next
	s.UpdatedAt = now
	return nil
}

// PickFirstAvailable starts a selection on the earliest selectable date.
func (s *Session) PickFirstAvailable(now time.Time) error {
	first, ok := availability.SelectFirstAvailable(s.Window)
	if !ok {
		return ErrNoAvailability
	}
	return s.Pick(first.Date, now)
}

func (s *Session) Clear(now time.Time) {
	if s.currentState().Kind() != selection.KindNone {
		s.Record(SelectionCleared{SessionID: s.ID, ListingID: string(s.ListingID), At: now})
	}
	s.State = selection.Clear(s.State)
	s.UpdatedAt = now
}

func (s *Session) SetGuests(count, maxGuests int, now time.Time) error {
	if !listings.ValidateGuestCount(count, maxGuests) {
		return ErrInvalidGuests
	}
	s.Guests = count
	s.UpdatedAt = now
	return nil
}

// RecordCompleted notes a priced complete selection for downstream consumers.
func (s *Session) RecordCompleted(c selection.Complete, q pricing.Quote, now time.Time) {
	s.Record(SelectionCompleted{
		SessionID:  s.ID,
		ListingID:  string(s.ListingID),
		From:       c.Range.From,
		To:         c.Range.To,
		Guests:     s.Guests,
		Nights:     q.Nights,
		GrandTotal: q.GrandTotal.Amount,
		Currency:   q.GrandTotal.Currency,
		At:         now,
	})
}

func (s *Session) SelectionDisabled() bool {
	_, ok := availability.SelectFirstAvailable(s.Window)
	return !ok
}

func (s *Session) currentState() selection.State {
	if s.State == nil {
		return selection.None{}
	}
	return s.State
}

// isCheckoutAfterWindow accepts the day after the window as a check-out when a stay
// has already started.
func (s *Session) isCheckoutAfterWindow(date time.Time) bool {
	if len(s.Window) == 0 {
		return false
	}
	if _, partial := s.currentState().(selection.Partial); !partial {
		return false
	}
	last := s.Window[len(s.Window)-1].Date
	return daterange.DaysBetween(last, date) == 1
}

// Clone returns a copy that shares nothing mutable with s. Pending events are not copied.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	return &Session{
		ID:        s.ID,
		ListingID: s.ListingID,
		Window:    append([]availability.DateInfo(nil), s.Window...),
		State:     s.currentState(),
		Guests:    s.Guests,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
