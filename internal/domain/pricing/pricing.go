package pricing

import (
	"errors"

	"staybook/internal/domain/selection"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

var (
	ErrInvalidRate = errors.New("pricing: nightly rate and cleaning fee must be non-negative")
)

// Quote is the cost breakdown of one stay. It is derived on demand and never stored.
type Quote struct {
	Nights       int
	NightlyRate  money.Money
	NightlyTotal money.Money
	CleaningFee  money.Money
	GrandTotal   money.Money
}

// Calculator computes quotes for complete selections.
type Calculator struct{}

// Quote prices a complete selection. Accepting only selection.Complete keeps
// partial or empty selections from ever reaching the arithmetic.
func (Calculator) Quote(sel selection.Complete, nightlyRate, cleaningFee money.Money) (Quote, error) {
	return QuoteRange(sel.Range, nightlyRate, cleaningFee)
}

// QuoteRange validates the inputs and computes
// NightlyTotal = rate * nights and GrandTotal = NightlyTotal + fee.
// Negative amounts fail with ErrInvalidRate before the range is looked at.
// Totals that do not fit in int64 fail with money.ErrOverflow.
func QuoteRange(r daterange.DateRange, nightlyRate, cleaningFee money.Money) (Quote, error) {
	if nightlyRate.IsNegative() || cleaningFee.IsNegative() {
		return Quote{}, ErrInvalidRate
	}
	nights, err := daterange.ComputeNights(r)
	if err != nil {
		return Quote{}, err
	}
	nightlyTotal, err := nightlyRate.Multiply(int64(nights))
	if err != nil {
		return Quote{}, err
	}
	grandTotal, err := nightlyTotal.Add(cleaningFee)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Nights:       nights,
		NightlyRate:  nightlyRate,
		NightlyTotal: nightlyTotal,
		CleaningFee:  cleaningFee,
		GrandTotal:   grandTotal,
	}, nil
}
