package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/internal/domain/selection"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestQuoteScenario(t *testing.T) {
	sel, err := selection.AsComplete(selection.Partial{From: d(2023, time.December, 20)}.Pick(d(2023, time.December, 23)))
	require.NoError(t, err)

	q, err := Calculator{}.Quote(sel, money.Yen(15000), money.Yen(5000))
	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, money.Yen(15000), q.NightlyRate)
	assert.Equal(t, money.Yen(45000), q.NightlyTotal)
	assert.Equal(t, money.Yen(5000), q.CleaningFee)
	assert.Equal(t, money.Yen(50000), q.GrandTotal)
}

func TestQuoteRangeInvalidRange(t *testing.T) {
	tests := []struct {
		name string
		r    daterange.DateRange
	}{
		{"same day", daterange.DateRange{From: d(2023, time.December, 20), To: d(2023, time.December, 20)}},
		{"reversed", daterange.DateRange{From: d(2023, time.December, 23), To: d(2023, time.December, 20)}},
		{"empty", daterange.DateRange{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := QuoteRange(tt.r, money.Yen(15000), money.Yen(5000))
			assert.ErrorIs(t, err, daterange.ErrInvalidRange)
		})
	}
}

func TestQuoteRangeInvalidRate(t *testing.T) {
	valid := daterange.DateRange{From: d(2023, time.December, 20), To: d(2023, time.December, 23)}
	invalid := daterange.DateRange{From: d(2023, time.December, 20), To: d(2023, time.December, 20)}

	tests := []struct {
		name string
		rate money.Money
		fee  money.Money
	}{
		{"negative rate", money.Yen(-1), money.Yen(5000)},
		{"negative fee", money.Yen(15000), money.Yen(-5000)},
		{"both negative", money.Yen(-1), money.Yen(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, r := range []daterange.DateRange{valid, invalid} {
				_, err := QuoteRange(r, tt.rate, tt.fee)
				assert.ErrorIs(t, err, ErrInvalidRate)
			}
		})
	}
}

func TestQuoteRangeCurrencyMismatch(t *testing.T) {
	r := daterange.DateRange{From: d(2023, time.December, 20), To: d(2023, time.December, 21)}
	_, err := QuoteRange(r, money.Yen(100), money.Must(1, "USD"))
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
}

func TestQuoteRangeOverflow(t *testing.T) {
	from := d(2024, time.January, 1)
	cases := []struct {
		name    string
		nights  int
		rate    int64
		fee     int64
		want    int64
		wantErr bool
	}{
		{name: "two nights fit", nights: 2, rate: 4_000_000_000_000_000_000, want: 8_000_000_000_000_000_000},
		{name: "three nights overflow the total", nights: 3, rate: 4_000_000_000_000_000_000, wantErr: true},
		{name: "fee overflows the grand total", nights: 2, rate: 4_000_000_000_000_000_000, fee: 2_000_000_000_000_000_000, wantErr: true},
	}
	prev := int64(-1)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := daterange.DateRange{From: from, To: daterange.AddDays(from, tc.nights)}
			q, err := QuoteRange(r, money.Yen(tc.rate), money.Yen(tc.fee))
			if tc.wantErr {
				assert.ErrorIs(t, err, money.ErrOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, q.GrandTotal.Amount)
			assert.Greater(t, q.GrandTotal.Amount, prev)
			prev = q.GrandTotal.Amount
		})
	}
}

func TestGrandTotalFormula(t *testing.T) {
	from := d(2024, time.January, 1)
	rates := []int64{0, 1, 9800, 15000}
	fees := []int64{0, 5000}
	for _, rate := range rates {
		for _, fee := range fees {
			prev := int64(-1)
			for nights := 1; nights <= 30; nights++ {
				r := daterange.DateRange{From: from, To: daterange.AddDays(from, nights)}
				q, err := QuoteRange(r, money.Yen(rate), money.Yen(fee))
				require.NoError(t, err)
				assert.Equal(t, nights, q.Nights)
				assert.Equal(t, rate*int64(nights)+fee, q.GrandTotal.Amount)
				if rate > 0 {
					assert.Greater(t, q.GrandTotal.Amount, prev)
				} else {
					assert.GreaterOrEqual(t, q.GrandTotal.Amount, prev)
				}
				prev = q.GrandTotal.Amount
			}
		}
	}
}

func TestQuoteIsPure(t *testing.T) {
	r := daterange.DateRange{From: d(2023, time.December, 20), To: d(2023, time.December, 23)}
	a, err := QuoteRange(r, money.Yen(15000), money.Yen(5000))
	require.NoError(t, err)
	b, err := QuoteRange(r, money.Yen(15000), money.Yen(5000))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
