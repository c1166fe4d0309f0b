package selection

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	"staybook/internal/app/inventory"
	"staybook/internal/app/sessions"
	domainlistings "staybook/internal/domain/listings"
)

const startSelectionKey = "selection.start"

var ErrListingRequired = errors.New("selection: listing id is required")

// StartSelectionCommand generates a window once and opens a session on it. Retries
// carrying the same idempotency key get the session created by the first call.
type StartSelectionCommand struct {
	ListingID       string
	Start           time.Time
	Days            int
	IdempotencyKeyV string
}

func (c StartSelectionCommand) Key() string { return startSelectionKey }

func (c StartSelectionCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c StartSelectionCommand) ResultPrototype() any { return new(dto.Selection) }

func (c StartSelectionCommand) Validate() error {
	if strings.TrimSpace(c.ListingID) == "" {
		return ErrListingRequired
	}
	return nil
}

type StartSelectionHandler struct {
	Deps
	Generator *inventory.Generator
	NewID     func() string
}

func (h *StartSelectionHandler) Handle(ctx context.Context, cmd StartSelectionCommand) (dto.Selection, error) {
	property, window, err := h.Generator.Generate(ctx, domainlistings.ListingID(cmd.ListingID), cmd.Start, cmd.Days)
	if err != nil {
		return dto.Selection{}, err
	}
	newID := h.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	session := sessions.New(newID(), property.ID, window, h.now())
	if err := h.persist(ctx, session); err != nil {
		return dto.Selection{}, err
	}
	return h.present(session, property)
}

var _ commands.Handler[StartSelectionCommand, dto.Selection] = (*StartSelectionHandler)(nil)
