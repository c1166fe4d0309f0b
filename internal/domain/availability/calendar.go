package availability

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/events"
)

var ErrOverlappingRange = errors.New("availability: range overlaps with an existing block")

type BlockReason string

const (
	ReasonBooking   BlockReason = "BOOKING"
	ReasonHostBlock BlockReason = "HOST_BLOCK"
	ReasonCleaning  BlockReason = "CLEANING_BUFFER"
)

// Block takes the nights of Range out of inventory.
type Block struct {
	Range     daterange.DateRange
	Reason    BlockReason
	Reference string
	CreatedAt time.Time
}

// Calendar is the inventory of one listing, expressed as blocked ranges.
type Calendar struct {
	ListingID listings.ListingID
	Blocks    []Block
	Version   int64
	events.EventRecorder
}

type CalendarRepository interface {
	Calendar(ctx context.Context, id listings.ListingID) (*Calendar, error)
	Save(ctx context.Context, calendar *Calendar) error
}

func NewCalendar(id listings.ListingID) *Calendar {
	return &Calendar{ListingID: id}
}

func (c *Calendar) CanReserve(r daterange.DateRange) bool {
	for _, block := range c.Blocks {
		if block.Range.Overlaps(r) {
			return false
		}
	}
	return true
}

func (c *Calendar) BlockRange(r daterange.DateRange, reason BlockReason, reference string, now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if reason == "" {
		reason = ReasonHostBlock
	}
	if !c.CanReserve(r) {
		return ErrOverlappingRange
	}
	c.Blocks = append(c.Blocks, Block{Range: r, Reason: reason, Reference: reference, CreatedAt: now.UTC()})
	c.Record(CalendarBlocked{ListingID: string(c.ListingID), Range: r, Reason: reason, At: now})
	return nil
}

// StatusOn classifies the night starting at date: unavailable when a block covers it,
// limited when it is free but the following night is blocked, available otherwise.
func (c *Calendar) StatusOn(date time.Time) Status {
	if c.blocked(date) {
		return Unavailable
	}
	if c.blocked(daterange.AddDays(date, 1)) {
		return Limited
	}
	return Available
}

// blocked reports whether the night starting at date falls inside a block.
// Block ranges are half-open, so a checkout day stays free.
func (c *Calendar) blocked(date time.Time) bool {
	for _, block := range c.Blocks {
		if block.Range.ContainsDate(date) {
			return true
		}
	}
	return false
}

var _ Source = (*Calendar)(nil)
