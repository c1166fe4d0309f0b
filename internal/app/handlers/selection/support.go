package selection

import (
	"context"
	"errors"
	"strings"
	"time"

	"staybook/internal/app/dto"
	"staybook/internal/app/outbox"
	"staybook/internal/app/sessions"
	domainlistings "staybook/internal/domain/listings"
	"staybook/internal/domain/pricing"
	domainselection "staybook/internal/domain/selection"
)

var ErrSessionRequired = errors.New("selection: session id is required")

// Deps is shared by every selection handler.
type Deps struct {
	Listings   domainlistings.Repository
	Sessions   sessions.Store
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Calculator pricing.Calculator
	Now        func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now().UTC()
	}
	return d.Now()
}

func (d Deps) load(ctx context.Context, id string) (*sessions.Session, *domainlistings.Property, error) {
	session, err := d.Sessions.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	property, err := d.Listings.ByID(ctx, session.ListingID)
	if err != nil {
		return nil, nil, err
	}
	return session, property, nil
}

// persist stores the session and hands its pending events to the outbox.
func (d Deps) persist(ctx context.Context, session *sessions.Session) error {
	if err := d.Sessions.Save(ctx, session); err != nil {
		return err
	}
	return outbox.RecordDomainEvents(ctx, d.Outbox, d.Encoder, session.Drain())
}

func (d Deps) present(session *sessions.Session, property *domainlistings.Property) (dto.Selection, error) {
	out := dto.Selection{
		ID:        session.ID,
		ListingID: string(session.ListingID),
		Guests:    session.Guests,
		MaxGuests: property.MaxGuests,
		Window:    dto.MapWindow(string(session.ListingID), session.Window),
	}
	out = dto.MapSelectionState(out, session.State)
	complete, err := domainselection.AsComplete(session.State)
	if err != nil {
		return out, nil
	}
	quote, err := d.Calculator.Quote(complete, property.NightlyRate, property.CleaningFee)
	if err != nil {
		return dto.Selection{}, err
	}
	valid := property.AcceptsGuests(session.Guests)
	mapped := dto.MapQuote(complete.Range, quote).WithGuests(session.Guests, property.MaxGuests, valid)
	out.Quote = &mapped
	out.CanSubmit = valid
	return out, nil
}

func requireSession(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrSessionRequired
	}
	return nil
}
