package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

// ListingFixture is one property of listings.yaml.
type ListingFixture struct {
	ID           string         `yaml:"id"`
	Title        string         `yaml:"title"`
	Location     string         `yaml:"location"`
	Rating       float64        `yaml:"rating"`
	ReviewCount  int            `yaml:"review_count"`
	PropertyType string         `yaml:"property_type"`
	Host         string         `yaml:"host"`
	MaxGuests    int            `yaml:"max_guests"`
	Bedrooms     int            `yaml:"bedrooms"`
	Beds         int            `yaml:"beds"`
	Bathrooms    int            `yaml:"bathrooms"`
	NightlyRate  money.Money    `yaml:"nightly_rate"`
	CleaningFee  money.Money    `yaml:"cleaning_fee"`
	Description  string         `yaml:"description"`
	Amenities    []string       `yaml:"amenities"`
	Images       []string       `yaml:"images"`
	Blocks       []BlockFixture `yaml:"blocks,omitempty"`
}

type BlockFixture struct {
	From      string `yaml:"from"` // "2023-12-20"
	To        string `yaml:"to"`
	Reason    string `yaml:"reason,omitempty"`
	Reference string `yaml:"reference,omitempty"`
}

type ListingsFile struct {
	Listings []ListingFixture `yaml:"listings"`
}

// LoadListings reads and validates a listings fixture file.
func LoadListings(path string) (*ListingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read listings fixtures: %w", err)
	}
	var file ListingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse listings fixtures: %w", err)
	}
	seen := make(map[string]struct{}, len(file.Listings))
	for i := range file.Listings {
		f := &file.Listings[i]
		if f.NightlyRate.Currency == "" {
			f.NightlyRate.Currency = money.JPY
		}
		if f.CleaningFee.Currency == "" {
			f.CleaningFee.Currency = f.NightlyRate.Currency
		}
		if _, dup := seen[f.ID]; dup {
			return nil, fmt.Errorf("listing %q: duplicate id", f.ID)
		}
		seen[f.ID] = struct{}{}
		if err := f.Property().Validate(); err != nil {
			return nil, fmt.Errorf("listing %q: %w", f.ID, err)
		}
	}
	return &file, nil
}

func (f ListingFixture) Property() *listings.Property {
	return &listings.Property{
		ID:           listings.ListingID(f.ID),
		Title:        f.Title,
		Location:     f.Location,
		Rating:       f.Rating,
		ReviewCount:  f.ReviewCount,
		PropertyType: f.PropertyType,
		Host:         f.Host,
		MaxGuests:    f.MaxGuests,
		Bedrooms:     f.Bedrooms,
		Beds:         f.Beds,
		Bathrooms:    f.Bathrooms,
		NightlyRate:  f.NightlyRate,
		CleaningFee:  f.CleaningFee,
		Description:  f.Description,
		Amenities:    append([]string(nil), f.Amenities...),
		Images:       append([]string(nil), f.Images...),
	}
}

// Calendar builds the listing's blocked ranges with dates in the reference zone.
func (f ListingFixture) Calendar(cfg Config) (*availability.Calendar, error) {
	cal := availability.NewCalendar(listings.ListingID(f.ID))
	for i, b := range f.Blocks {
		from, err := daterange.Parse(b.From, cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("listing %q block %d: %w", f.ID, i, err)
		}
		to, err := daterange.Parse(b.To, cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("listing %q block %d: %w", f.ID, i, err)
		}
		reference := b.Reference
		if reference == "" {
			reference = fmt.Sprintf("%s-fixture-%d", f.ID, i)
		}
		r := daterange.DateRange{From: from, To: to}
		if err := cal.BlockRange(r, availability.BlockReason(b.Reason), reference, from); err != nil {
			return nil, fmt.Errorf("listing %q block %d: %w", f.ID, i, err)
		}
	}
	cal.Drain()
	return cal, nil
}
