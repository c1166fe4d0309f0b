package selection

import (
	"context"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	domainselection "staybook/internal/domain/selection"
)

const pickDateKey = "selection.pick"

// PickDateCommand applies one picked date. A zero Date picks the first available one.
type PickDateCommand struct {
	SessionID string
	Date      time.Time
}

func (c PickDateCommand) Key() string { return pickDateKey }

func (c PickDateCommand) Validate() error { return requireSession(c.SessionID) }

type PickDateHandler struct {
	Deps
}

func (h *PickDateHandler) Handle(ctx context.Context, cmd PickDateCommand) (dto.Selection, error) {
	session, property, err := h.load(ctx, cmd.SessionID)
	if err != nil {
		return dto.Selection{}, err
	}
	now := h.now()
	if cmd.Date.IsZero() {
		err = session.PickFirstAvailable(now)
	} else {
		err = session.Pick(cmd.Date, now)
	}
	if err != nil {
		return dto.Selection{}, err
	}
	if complete, ok := session.State.(domainselection.Complete); ok {
		quote, err := h.Calculator.Quote(complete, property.NightlyRate, property.CleaningFee)
		if err != nil {
			return dto.Selection{}, err
		}
		session.RecordCompleted(complete, quote, now)
	}
	if err := h.persist(ctx, session); err != nil {
		return dto.Selection{}, err
	}
	return h.present(session, property)
}

var _ commands.Handler[PickDateCommand, dto.Selection] = (*PickDateHandler)(nil)
