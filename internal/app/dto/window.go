package dto

import (
	"time"

	"staybook/internal/domain/availability"
)

type WindowDay struct {
	Date       string `json:"date"`
	Label      string `json:"label"`
	Status     string `json:"status"`
	Glyph      string `json:"glyph"`
	Selectable bool   `json:"selectable"`
}

// Window is the picker payload. FirstAvailable is empty and SelectionDisabled set when
// nothing in the window can be chosen.
type Window struct {
	ListingID         string      `json:"listing_id"`
	Start             string      `json:"start,omitempty"`
	Days              []WindowDay `json:"days"`
	FirstAvailable    string      `json:"first_available,omitempty"`
	SelectionDisabled bool        `json:"selection_disabled"`
}

func MapWindow(listingID string, window []availability.DateInfo) Window {
	out := Window{ListingID: listingID, Days: make([]WindowDay, 0, len(window))}
	for _, info := range window {
		out.Days = append(out.Days, WindowDay{
			Date:       info.Date.Format(time.DateOnly),
			Label:      FormatDateLabel(info.Date),
			Status:     string(info.Status),
			Glyph:      Glyph(info.Status),
			Selectable: availability.IsSelectable(info),
		})
	}
	if len(out.Days) > 0 {
		out.Start = out.Days[0].Date
	}
	if first, ok := availability.SelectFirstAvailable(window); ok {
		out.FirstAvailable = first.Date.Format(time.DateOnly)
	} else {
		out.SelectionDisabled = true
	}
	return out
}
