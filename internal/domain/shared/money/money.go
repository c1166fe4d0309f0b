package money

import (
	"errors"
	"math"
	"strings"
)

// JPY is the listing currency; yen amounts carry no minor unit.
const JPY = "JPY"

var (
	ErrInvalidCurrency  = errors.New("money: invalid currency code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
	ErrOverflow         = errors.New("money: amount out of range")
)

// Money keeps amounts as integers in the smallest unit of the currency.
type Money struct {
	Amount   int64  `json:"amount" bson:"amount" yaml:"amount"`
	Currency string `json:"currency" bson:"currency" yaml:"currency"`
}

// New constructs a Money value validating minimal invariants.
func New(amount int64, currency string) (Money, error) {
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	currency = strings.ToUpper(currency)
	return Money{Amount: amount, Currency: currency}, nil
}

// Must creates Money and panics if validation fails; useful in tests and fixtures.
func Must(amount int64, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Yen is shorthand for Must(amount, JPY).
func Yen(amount int64) Money {
	return Money{Amount: amount, Currency: JPY}
}

// Add adds two money values ensuring currencies match.
func (m Money) Add(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	sum := m.Amount + other.Amount
	if (other.Amount > 0 && sum < m.Amount) || (other.Amount < 0 && sum > m.Amount) {
		return Money{}, ErrOverflow
	}
	return Money{Amount: sum, Currency: m.Currency}, nil
}

// Multiply multiplies the amount by the provided factor. A product that
// does not fit in int64 fails with ErrOverflow.
func (m Money) Multiply(times int64) (Money, error) {
	product := m.Amount * times
	if m.Amount != 0 && (product/m.Amount != times || (m.Amount == -1 && times == math.MinInt64)) {
		return Money{}, ErrOverflow
	}
	return Money{Amount: product, Currency: m.Currency}, nil
}

func (m Money) IsNegative() bool {
	return m.Amount < 0
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) ensureSameCurrency(other Money) error {
	if m.Currency == "" || other.Currency == "" {
		return ErrInvalidCurrency
	}
	if m.Currency != other.Currency {
		return ErrCurrencyMismatch
	}
	return nil
}
