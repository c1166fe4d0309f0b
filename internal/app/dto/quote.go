package dto

import (
	"fmt"
	"time"

	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/daterange"
)

type QuoteLine struct {
	Label   string `json:"label"`
	Amount  int64  `json:"amount"`
	Display string `json:"display"`
}

// Quote is the price breakdown shown under a complete selection.
type Quote struct {
	From         string      `json:"from"`
	To           string      `json:"to"`
	Nights       int         `json:"nights"`
	Currency     string      `json:"currency"`
	NightlyRate  int64       `json:"nightly_rate"`
	NightlyTotal int64       `json:"nightly_total"`
	CleaningFee  int64       `json:"cleaning_fee"`
	GrandTotal   int64       `json:"grand_total"`
	Lines        []QuoteLine `json:"lines"`
	Guests       int         `json:"guests"`
	MaxGuests    int         `json:"max_guests"`
	GuestsValid  bool        `json:"guests_valid"`
}

func MapQuote(r daterange.DateRange, q pricing.Quote) Quote {
	return Quote{
		From:         r.From.Format(time.DateOnly),
		To:           r.To.Format(time.DateOnly),
		Nights:       q.Nights,
		Currency:     q.GrandTotal.Currency,
		NightlyRate:  q.NightlyRate.Amount,
		NightlyTotal: q.NightlyTotal.Amount,
		CleaningFee:  q.CleaningFee.Amount,
		GrandTotal:   q.GrandTotal.Amount,
		Lines: []QuoteLine{
			{
				Label:   fmt.Sprintf("%s x %d泊", FormatYen(q.NightlyRate), q.Nights),
				Amount:  q.NightlyTotal.Amount,
				Display: FormatYen(q.NightlyTotal),
			},
			{Label: "清掃料", Amount: q.CleaningFee.Amount, Display: FormatYen(q.CleaningFee)},
			{Label: "合計", Amount: q.GrandTotal.Amount, Display: FormatYen(q.GrandTotal)},
		},
	}
}

// WithGuests attaches the guest check. It never changes the amounts.
func (q Quote) WithGuests(guests, maxGuests int, valid bool) Quote {
	q.Guests = guests
	q.MaxGuests = maxGuests
	q.GuestsValid = valid
	return q
}
