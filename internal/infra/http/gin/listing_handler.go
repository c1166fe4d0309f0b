package ginserver

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	availabilityapp "staybook/internal/app/handlers/availability"
	listingapp "staybook/internal/app/handlers/listings"
	reservationapp "staybook/internal/app/handlers/reservations"
	"staybook/internal/app/queries"
)

// ListingHandler wires listing queries to HTTP.
type ListingHandler struct {
	Queries  queries.Bus
	Location *time.Location
	Logger   *slog.Logger
}

func (h ListingHandler) Overview(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	query := listingapp.GetOverviewQuery{ListingID: c.Param("id")}
	result, err := queries.Ask[listingapp.GetOverviewQuery, dto.ListingOverview](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Availability responds with the picker window: ?start=YYYY-MM-DD&days=N, both optional.
func (h ListingHandler) Availability(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	start, err := parseDate(c.Query("start"), h.Location)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	days, _, ok := queryInt(c, "days")
	if !ok {
		return
	}
	query := availabilityapp.GetWindowQuery{ListingID: c.Param("id"), Start: start, Days: days}
	result, err := queries.Ask[availabilityapp.GetWindowQuery, dto.Window](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Quote prices ?from=&to=&guests= for the listing.
func (h ListingHandler) Quote(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	from, err := parseDate(c.Query("from"), h.Location)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	to, err := parseDate(c.Query("to"), h.Location)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	guests, present, ok := queryInt(c, "guests")
	if !ok {
		return
	}
	query := reservationapp.GetQuoteQuery{ListingID: c.Param("id"), From: from, To: to}
	if present {
		query.Guests = &guests
	}
	result, err := queries.Ask[reservationapp.GetQuoteQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// queryInt reads an optional integer parameter. present is false when the
// parameter is missing or empty; ok is false once a 400 has been written.
func queryInt(c *gin.Context, name string) (n int, present, ok bool) {
	raw, found := c.GetQuery(name)
	if !found || raw == "" {
		return 0, false, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondWithCode(c, http.StatusBadRequest, codeInvalidRequest, name+" must be an integer")
		return 0, false, false
	}
	return n, true, true
}

var _ ListingHTTP = ListingHandler{}
