package memory

import (
	"context"
	"sync"

	domainavailability "staybook/internal/domain/availability"
	domainlistings "staybook/internal/domain/listings"
)

// ListingRepository is an in-memory implementation backed by fixtures.
type ListingRepository struct {
	mu    sync.RWMutex
	items map[domainlistings.ListingID]*domainlistings.Property
}

// NewListingRepository builds an empty repository.
func NewListingRepository() *ListingRepository {
	return &ListingRepository{
		items: make(map[domainlistings.ListingID]*domainlistings.Property),
	}
}

// ByID returns a copy of the property or listings.ErrNotFound.
func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	property, ok := r.items[id]
	if !ok {
		return nil, domainlistings.ErrNotFound
	}
	return property.Clone(), nil
}

// Save validates and stores a property.
func (r *ListingRepository) Save(ctx context.Context, property *domainlistings.Property) error {
	if err := property.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[property.ID] = property.Clone()
	return nil
}

// CalendarRepository keeps availability calendars in memory.
type CalendarRepository struct {
	mu        sync.RWMutex
	calendars map[domainlistings.ListingID]*domainavailability.Calendar
}

// NewCalendarRepository returns a repository initialized with empty calendars.
func NewCalendarRepository() *CalendarRepository {
	return &CalendarRepository{
		calendars: make(map[domainlistings.ListingID]*domainavailability.Calendar),
	}
}

// Calendar returns a copy of the listing's calendar; unknown listings get an empty one.
func (r *CalendarRepository) Calendar(ctx context.Context, id domainlistings.ListingID) (*domainavailability.Calendar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cal, ok := r.calendars[id]; ok {
		return cloneCalendar(cal), nil
	}
	return domainavailability.NewCalendar(id), nil
}

// Save persists a calendar snapshot and bumps its version.
func (r *CalendarRepository) Save(ctx context.Context, calendar *domainavailability.Calendar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	calendar.Version++
	r.calendars[calendar.ListingID] = cloneCalendar(calendar)
	return nil
}

func cloneCalendar(cal *domainavailability.Calendar) *domainavailability.Calendar {
	return &domainavailability.Calendar{
		ListingID: cal.ListingID,
		Blocks:    append([]domainavailability.Block(nil), cal.Blocks...),
		Version:   cal.Version,
	}
}

var (
	_ domainlistings.Repository             = (*ListingRepository)(nil)
	_ domainavailability.CalendarRepository = (*CalendarRepository)(nil)
)
