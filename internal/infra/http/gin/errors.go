package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	availabilityapp "staybook/internal/app/handlers/availability"
	listingapp "staybook/internal/app/handlers/listings"
	reservationapp "staybook/internal/app/handlers/reservations"
	selectionapp "staybook/internal/app/handlers/selection"
	"staybook/internal/app/inventory"
	"staybook/internal/app/sessions"
	domainlistings "staybook/internal/domain/listings"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/selection"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
)

var errDateFormat = errors.New("dates must use YYYY-MM-DD")

const (
	codeInvalidRequest      = "invalid_request"
	codeInvalidRange        = "invalid_range"
	codeInvalidRate         = "invalid_rate"
	codeInvalidGuests       = "invalid_guests"
	codeDateUnavailable     = "date_unavailable"
	codeDateOutsideWindow   = "date_outside_window"
	codeSelectionIncomplete = "selection_incomplete"
	codeNoAvailability      = "no_availability"
	codeNotFound            = "not_found"
	codeInternal            = "internal"
)

type errorRule struct {
	status  int
	code    string
	targets []error
}

// errorRules is checked in order; the first rule with a matching target wins.
var errorRules = []errorRule{
	{http.StatusNotFound, codeNotFound, []error{domainlistings.ErrNotFound, sessions.ErrSessionNotFound}},
	{http.StatusBadRequest, codeInvalidRange, []error{daterange.ErrInvalidRange}},
	{http.StatusBadRequest, codeInvalidRate, []error{
		pricing.ErrInvalidRate,
		money.ErrCurrencyMismatch,
		money.ErrInvalidCurrency,
		money.ErrOverflow,
	}},
	{http.StatusBadRequest, codeInvalidGuests, []error{sessions.ErrInvalidGuests}},
	{http.StatusBadRequest, codeDateUnavailable, []error{selection.ErrDateUnavailable}},
	{http.StatusBadRequest, codeDateOutsideWindow, []error{sessions.ErrDateOutsideWindow}},
	{http.StatusConflict, codeSelectionIncomplete, []error{selection.ErrSelectionIncomplete}},
	{http.StatusConflict, codeNoAvailability, []error{sessions.ErrNoAvailability}},
	{http.StatusBadRequest, codeInvalidRequest, []error{
		availabilityapp.ErrListingRequired,
		listingapp.ErrListingRequired,
		reservationapp.ErrListingRequired,
		selectionapp.ErrListingRequired,
		selectionapp.ErrSessionRequired,
		inventory.ErrWindowSize,
		errDateFormat,
	}},
}

// classify maps err onto an HTTP status and a stable machine-readable code.
func classify(err error) (int, string) {
	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.status, rule.code
			}
		}
	}
	return http.StatusInternalServerError, codeInternal
}

func respondWithError(c *gin.Context, logger *slog.Logger, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "path", c.FullPath(), "error", err, "request_id", c.GetString("request_id"))
	}
	respondWithCode(c, status, code, err.Error())
}

func respondWithCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": code, "message": message})
}

// parseDate reads an optional YYYY-MM-DD value; empty yields the zero time.
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := daterange.Parse(raw, loc)
	if err != nil {
		return time.Time{}, errDateFormat
	}
	return t, nil
}
