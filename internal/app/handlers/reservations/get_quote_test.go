package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainavailability "staybook/internal/domain/availability"
	domainlistings "staybook/internal/domain/listings"
	"staybook/internal/domain/selection"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

type listingRepo map[domainlistings.ListingID]*domainlistings.Property

func (r listingRepo) ByID(_ context.Context, id domainlistings.ListingID) (*domainlistings.Property, error) {
	p, ok := r[id]
	if !ok {
		return nil, domainlistings.ErrNotFound
	}
	return p.Clone(), nil
}

func (r listingRepo) Save(context.Context, *domainlistings.Property) error { return nil }

type outcomes []string

func (o *outcomes) ObserveWindow([]domainavailability.DateInfo) {}
func (o *outcomes) ObserveQuote(outcome string)                 { *o = append(*o, outcome) }

func day(n int) time.Time {
	return time.Date(2023, time.December, n, 0, 0, 0, 0, time.UTC)
}

func guests(n int) *int { return &n }

func TestGetQuoteHandler(t *testing.T) {
	obs := &outcomes{}
	h := &GetQuoteHandler{
		Listings: listingRepo{
			"cottage": {
				ID:          "cottage",
				MaxGuests:   4,
				NightlyRate: money.Yen(15000),
				CleaningFee: money.Yen(5000),
			},
			"palace": {
				ID:          "palace",
				MaxGuests:   4,
				NightlyRate: money.Yen(4_000_000_000_000_000_000),
				CleaningFee: money.Yen(0),
			},
		},
		Observer: obs,
	}
	ctx := context.Background()

	tests := []struct {
		name       string
		query      GetQuoteQuery
		wantTotal  int64
		wantGuests int
		wantValid  bool
		wantErr    error
	}{
		{name: "three nights", query: GetQuoteQuery{ListingID: "cottage", From: day(18), To: day(21), Guests: guests(2)}, wantTotal: 50000, wantGuests: 2, wantValid: true},
		{name: "one night default guest", query: GetQuoteQuery{ListingID: "cottage", From: day(18), To: day(19)}, wantTotal: 20000, wantGuests: 1, wantValid: true},
		{name: "too many guests still priced", query: GetQuoteQuery{ListingID: "cottage", From: day(18), To: day(21), Guests: guests(5)}, wantTotal: 50000, wantGuests: 5},
		{name: "explicit zero guests", query: GetQuoteQuery{ListingID: "cottage", From: day(18), To: day(21), Guests: guests(0)}, wantTotal: 50000, wantGuests: 0},
		{name: "negative guests", query: GetQuoteQuery{ListingID: "cottage", From: day(18), To: day(21), Guests: guests(-1)}, wantTotal: 50000, wantGuests: -1},
		{name: "same day", query: GetQuoteQuery{ListingID: "cottage", From: day(18), To: day(18)}, wantErr: daterange.ErrInvalidRange},
		{name: "reversed", query: GetQuoteQuery{ListingID: "cottage", From: day(21), To: day(18)}, wantErr: daterange.ErrInvalidRange},
		{name: "unknown listing", query: GetQuoteQuery{ListingID: "ghost", From: day(18), To: day(21)}, wantErr: domainlistings.ErrNotFound},
		{name: "total out of range", query: GetQuoteQuery{ListingID: "palace", From: day(18), To: day(21)}, wantErr: money.ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Handle(ctx, tt.query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, got.GrandTotal)
			assert.Equal(t, tt.wantGuests, got.Guests)
			assert.Equal(t, tt.wantValid, got.GuestsValid)
		})
	}
	assert.Equal(t, []string{"ok", "ok", "ok", "ok", "ok", "invalid_range", "invalid_range", "error"}, []string(*obs))

	assert.ErrorIs(t, GetQuoteQuery{ListingID: "cottage", From: day(18)}.Validate(), selection.ErrSelectionIncomplete)
	assert.ErrorIs(t, GetQuoteQuery{}.Validate(), ErrListingRequired)
}
