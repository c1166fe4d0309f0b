package listings

import (
	"context"
	"errors"
	"strings"

	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	domainlistings "staybook/internal/domain/listings"
)

const getOverviewKey = "listings.overview"

var ErrListingRequired = errors.New("listings: listing id is required")

// GetOverviewQuery loads the property detail record.
type GetOverviewQuery struct {
	ListingID string
}

func (q GetOverviewQuery) Key() string { return getOverviewKey }

func (q GetOverviewQuery) Validate() error {
	if strings.TrimSpace(q.ListingID) == "" {
		return ErrListingRequired
	}
	return nil
}

type GetOverviewHandler struct {
	Listings domainlistings.Repository
}

func (h *GetOverviewHandler) Handle(ctx context.Context, q GetOverviewQuery) (dto.ListingOverview, error) {
	property, err := h.Listings.ByID(ctx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.ListingOverview{}, err
	}
	return dto.MapListingOverview(property), nil
}

var _ queries.Handler[GetOverviewQuery, dto.ListingOverview] = (*GetOverviewHandler)(nil)
