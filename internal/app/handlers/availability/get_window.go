package availability

import (
	"context"
	"errors"
	"strings"
	"time"

	"staybook/internal/app/dto"
	"staybook/internal/app/inventory"
	"staybook/internal/app/queries"
	domainlistings "staybook/internal/domain/listings"
)

const getWindowKey = "availability.window"

var ErrListingRequired = errors.New("availability: listing id is required")

// GetWindowQuery asks for the dates a listing offers. Zero Start and Days use the
// configured defaults.
type GetWindowQuery struct {
	ListingID string
	Start     time.Time
	Days      int
}

func (q GetWindowQuery) Key() string { return getWindowKey }

func (q GetWindowQuery) Validate() error {
	if strings.TrimSpace(q.ListingID) == "" {
		return ErrListingRequired
	}
	return nil
}

type GetWindowHandler struct {
	Generator *inventory.Generator
}

func (h *GetWindowHandler) Handle(ctx context.Context, q GetWindowQuery) (dto.Window, error) {
	_, window, err := h.Generator.Generate(ctx, domainlistings.ListingID(q.ListingID), q.Start, q.Days)
	if err != nil {
		return dto.Window{}, err
	}
	return dto.MapWindow(q.ListingID, window), nil
}

var _ queries.Handler[GetWindowQuery, dto.Window] = (*GetWindowHandler)(nil)
