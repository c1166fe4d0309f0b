package selection

import (
	"context"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
)

const clearSelectionKey = "selection.clear"

type ClearSelectionCommand struct {
	SessionID string
}

func (c ClearSelectionCommand) Key() string { return clearSelectionKey }

func (c ClearSelectionCommand) Validate() error { return requireSession(c.SessionID) }

type ClearSelectionHandler struct {
	Deps
}

func (h *ClearSelectionHandler) Handle(ctx context.Context, cmd ClearSelectionCommand) (dto.Selection, error) {
	session, property, err := h.load(ctx, cmd.SessionID)
	if err != nil {
		return dto.Selection{}, err
	}
	session.Clear(h.now())
	if err := h.persist(ctx, session); err != nil {
		return dto.Selection{}, err
	}
	return h.present(session, property)
}

var _ commands.Handler[ClearSelectionCommand, dto.Selection] = (*ClearSelectionHandler)(nil)
