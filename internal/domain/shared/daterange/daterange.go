package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: end must be after start")
)

const day = 24 * time.Hour

// DateRange represents a half-open interval of nights [From, To).
// Both ends are date-only values at midnight in the same location.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Day truncates t to midnight of its calendar date in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AddDays moves a date by n calendar days, keeping it midnight-aligned across DST changes.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b, ignoring clock components.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / day)
}

// Parse reads a YYYY-MM-DD date in loc.
func Parse(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(time.DateOnly, value, loc)
}

func New(from, to time.Time, loc *time.Location) (DateRange, error) {
	dr := DateRange{From: Day(from, loc), To: Day(to, loc)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.From.IsZero() || dr.To.IsZero() {
		return ErrInvalidRange
	}
	if DaysBetween(dr.From, dr.To) <= 0 {
		return ErrInvalidRange
	}
	return nil
}

// ComputeNights returns the whole-day difference between the ends of r.
// Zero or negative results are rejected, never clamped.
func ComputeNights(r DateRange) (int, error) {
	if r.From.IsZero() || r.To.IsZero() {
		return 0, ErrInvalidRange
	}
	nights := DaysBetween(r.From, r.To)
	if nights <= 0 {
		return 0, ErrInvalidRange
	}
	return nights, nil
}

// Nights is ComputeNights for ranges already known to be valid; invalid ranges report 0.
func (dr DateRange) Nights() int {
	n, err := ComputeNights(dr)
	if err != nil {
		return 0
	}
	return n
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.From.Before(other.To) && other.From.Before(dr.To)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	return (t.Equal(dr.From) || t.After(dr.From)) && t.Before(dr.To)
}

func (dr DateRange) String() string {
	return dr.From.Format(time.DateOnly) + ".." + dr.To.Format(time.DateOnly)
}
