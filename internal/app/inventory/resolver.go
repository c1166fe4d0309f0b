// Package inventory decides where availability comes from and how large a window is.
package inventory

import (
	"context"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
)

const (
	ModeRandom   = "random"
	ModeCalendar = "calendar"
)

// Resolver returns the availability source for a listing.
type Resolver interface {
	SourceFor(ctx context.Context, id listings.ListingID) (availability.Source, error)
}

// RandomResolver serves the same random source for every listing.
type RandomResolver struct {
	Source availability.Source
}

func (r RandomResolver) SourceFor(context.Context, listings.ListingID) (availability.Source, error) {
	if r.Source == nil {
		return availability.NewRandomSource(nil), nil
	}
	return r.Source, nil
}

// CalendarResolver reads the listing's blocked ranges.
type CalendarResolver struct {
	Calendars availability.CalendarRepository
}

func (r CalendarResolver) SourceFor(ctx context.Context, id listings.ListingID) (availability.Source, error) {
	cal, err := r.Calendars.Calendar(ctx, id)
	if err != nil {
		return nil, err
	}
	return cal, nil
}

var (
	_ Resolver = RandomResolver{}
	_ Resolver = CalendarResolver{}
)
