package dto

import (
	"time"

	"staybook/internal/domain/selection"
)

// Selection is the state of a picker session as the client renders it.
type Selection struct {
	ID        string `json:"id"`
	ListingID string `json:"listing_id"`
	State     string `json:"state"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Nights    int    `json:"nights"`
	Guests    int    `json:"guests"`
	MaxGuests int    `json:"max_guests"`
	CanSubmit bool   `json:"can_submit"`
	Window    Window `json:"window"`
	Quote     *Quote `json:"quote,omitempty"`
}

// MapSelectionState fills the state fields of out from state.
func MapSelectionState(out Selection, state selection.State) Selection {
	out.From, out.To, out.Nights = "", "", 0
	switch s := state.(type) {
	case selection.Partial:
		out.State = string(selection.KindPartial)
		out.From = s.From.Format(time.DateOnly)
	case selection.Complete:
		out.State = string(selection.KindComplete)
		out.From = s.Range.From.Format(time.DateOnly)
		out.To = s.Range.To.Format(time.DateOnly)
		out.Nights = s.Range.Nights()
	default:
		out.State = string(selection.KindNone)
	}
	return out
}
