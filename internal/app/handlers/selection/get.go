package selection

import (
	"context"

	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
)

const getSelectionKey = "selection.get"

type GetSelectionQuery struct {
	SessionID string
}

func (q GetSelectionQuery) Key() string { return getSelectionKey }

func (q GetSelectionQuery) Validate() error { return requireSession(q.SessionID) }

type GetSelectionHandler struct {
	Deps
}

func (h *GetSelectionHandler) Handle(ctx context.Context, q GetSelectionQuery) (dto.Selection, error) {
	session, property, err := h.load(ctx, q.SessionID)
	if err != nil {
		return dto.Selection{}, err
	}
	return h.present(session, property)
}

var _ queries.Handler[GetSelectionQuery, dto.Selection] = (*GetSelectionHandler)(nil)
