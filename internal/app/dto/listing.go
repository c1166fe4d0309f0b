package dto

import (
	"fmt"

	domainlistings "staybook/internal/domain/listings"
)

// ListingOverview is the property detail page payload.
type ListingOverview struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"review_count"`
	ReviewsLabel string   `json:"reviews_label"`
	PropertyType string   `json:"property_type"`
	Host         string   `json:"host"`
	MaxGuests    int      `json:"max_guests"`
	Bedrooms     int      `json:"bedrooms"`
	Beds         int      `json:"beds"`
	Bathrooms    int      `json:"bathrooms"`
	Features     []string `json:"features"`
	Currency     string   `json:"currency"`
	NightlyRate  int64    `json:"nightly_rate"`
	CleaningFee  int64    `json:"cleaning_fee"`
	PriceLabel   string   `json:"price_label"`
	Description  string   `json:"description"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	GuestOptions []int    `json:"guest_options"`
}

func MapListingOverview(p *domainlistings.Property) ListingOverview {
	if p == nil {
		return ListingOverview{}
	}
	options := make([]int, 0, p.MaxGuests)
	for n := 1; n <= p.MaxGuests; n++ {
		options = append(options, n)
	}
	return ListingOverview{
		ID:           string(p.ID),
		Title:        p.Title,
		Location:     p.Location,
		Rating:       p.Rating,
		ReviewCount:  p.ReviewCount,
		ReviewsLabel: fmt.Sprintf("%.1f (%d件のレビュー)", p.Rating, p.ReviewCount),
		PropertyType: p.PropertyType,
		Host:         p.Host,
		MaxGuests:    p.MaxGuests,
		Bedrooms:     p.Bedrooms,
		Beds:         p.Beds,
		Bathrooms:    p.Bathrooms,
		Features: []string{
			fmt.Sprintf("最大%d人", p.MaxGuests),
			fmt.Sprintf("寝室%d部屋", p.Bedrooms),
			fmt.Sprintf("ベッド%d台", p.Beds),
			fmt.Sprintf("バスルーム%d室", p.Bathrooms),
		},
		Currency:     p.NightlyRate.Currency,
		NightlyRate:  p.NightlyRate.Amount,
		CleaningFee:  p.CleaningFee.Amount,
		PriceLabel:   FormatNightly(p.NightlyRate),
		Description:  p.Description,
		Amenities:    append([]string(nil), p.Amenities...),
		Images:       append([]string(nil), p.Images...),
		GuestOptions: options,
	}
}
