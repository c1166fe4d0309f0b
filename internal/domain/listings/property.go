package listings

import (
	"context"
	"errors"
	"strings"

	"staybook/internal/domain/shared/money"
)

var (
	ErrNotFound      = errors.New("listings: listing not found")
	ErrIDRequired    = errors.New("listings: id is required")
	ErrTitleRequired = errors.New("listings: title is required")
	ErrGuestsLimit   = errors.New("listings: max guests must be at least 1")
	ErrNightlyRate   = errors.New("listings: nightly rate must be non-negative")
	ErrCleaningFee   = errors.New("listings: cleaning fee must be non-negative")
	ErrCurrency      = errors.New("listings: nightly rate and cleaning fee must share a currency")
)

type ListingID string

// Property is the configuration record of a single rental: descriptive data for the
// detail page plus the numbers the reservation calculator needs.
type Property struct {
	ID           ListingID
	Title        string
	Location     string
	Rating       float64
	ReviewCount  int
	PropertyType string
	Host         string
	MaxGuests    int
	Bedrooms     int
	Beds         int
	Bathrooms    int
	NightlyRate  money.Money
	CleaningFee  money.Money
	Description  string
	Amenities    []string
	Images       []string
}

type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Property, error)
	Save(ctx context.Context, property *Property) error
}

// Validate checks the invariants a property needs before it can be quoted.
func (p *Property) Validate() error {
	if strings.TrimSpace(string(p.ID)) == "" {
		return ErrIDRequired
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if p.MaxGuests < 1 {
		return ErrGuestsLimit
	}
	if p.NightlyRate.IsNegative() {
		return ErrNightlyRate
	}
	if p.CleaningFee.IsNegative() {
		return ErrCleaningFee
	}
	if p.NightlyRate.Currency == "" || p.NightlyRate.Currency != p.CleaningFee.Currency {
		return ErrCurrency
	}
	return nil
}

// AcceptsGuests reports whether count fits this property.
func (p *Property) AcceptsGuests(count int) bool {
	return ValidateGuestCount(count, p.MaxGuests)
}

// ValidateGuestCount reports whether 1 <= count <= maxGuests. It gates submission only;
// the price does not depend on it.
func ValidateGuestCount(count, maxGuests int) bool {
	return count >= 1 && count <= maxGuests
}

// Clone returns a deep copy so repositories never share slices with callers.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Amenities = append([]string(nil), p.Amenities...)
	clone.Images = append([]string(nil), p.Images...)
	return &clone
}
