package reservations

import (
	"context"
	"errors"
	"strings"
	"time"

	"staybook/internal/app/dto"
	"staybook/internal/app/inventory"
	"staybook/internal/app/queries"
	domainlistings "staybook/internal/domain/listings"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/selection"
	"staybook/internal/domain/shared/daterange"
)

const getQuoteKey = "reservations.quote"

var ErrListingRequired = errors.New("reservations: listing id is required")

// GetQuoteQuery prices a stay. Guests only decides GuestsValid on the result;
// nil means one guest, while an explicit count is checked as given.
type GetQuoteQuery struct {
	ListingID string
	From      time.Time
	To        time.Time
	Guests    *int
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

func (q GetQuoteQuery) Validate() error {
	if strings.TrimSpace(q.ListingID) == "" {
		return ErrListingRequired
	}
	if q.From.IsZero() || q.To.IsZero() {
		return selection.ErrSelectionIncomplete
	}
	return nil
}

type GetQuoteHandler struct {
	Listings   domainlistings.Repository
	Calculator pricing.Calculator
	Observer   inventory.Observer
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.Quote, error) {
	property, err := h.Listings.ByID(ctx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.Quote{}, err
	}
	sel, err := selection.NewComplete(daterange.DateRange{From: q.From, To: q.To})
	if err != nil {
		inventory.ObserveQuote(h.Observer, "invalid_range")
		return dto.Quote{}, err
	}
	quote, err := h.Calculator.Quote(sel, property.NightlyRate, property.CleaningFee)
	if err != nil {
		inventory.ObserveQuote(h.Observer, "error")
		return dto.Quote{}, err
	}
	guests := 1
	if q.Guests != nil {
		guests = *q.Guests
	}
	inventory.ObserveQuote(h.Observer, "ok")
	return dto.MapQuote(sel.Range, quote).WithGuests(guests, property.MaxGuests, property.AcceptsGuests(guests)), nil
}

var _ queries.Handler[GetQuoteQuery, dto.Quote] = (*GetQuoteHandler)(nil)
