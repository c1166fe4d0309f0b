package selection

import (
	"context"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
)

const setGuestsKey = "selection.guests"

type SetGuestsCommand struct {
	SessionID string
	Guests    int
}

func (c SetGuestsCommand) Key() string { return setGuestsKey }

func (c SetGuestsCommand) Validate() error { return requireSession(c.SessionID) }

// SetGuestsHandler rejects counts outside 1..MaxGuests and leaves the session untouched then.
type SetGuestsHandler struct {
	Deps
}

func (h *SetGuestsHandler) Handle(ctx context.Context, cmd SetGuestsCommand) (dto.Selection, error) {
	session, property, err := h.load(ctx, cmd.SessionID)
	if err != nil {
		return dto.Selection{}, err
	}
	if err := session.SetGuests(cmd.Guests, property.MaxGuests, h.now()); err != nil {
		return dto.Selection{}, err
	}
	if err := h.persist(ctx, session); err != nil {
		return dto.Selection{}, err
	}
	return h.present(session, property)
}

var _ commands.Handler[SetGuestsCommand, dto.Selection] = (*SetGuestsHandler)(nil)
