package ginserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	selectionapp "staybook/internal/app/handlers/selection"
	"staybook/internal/app/queries"
)

// SelectionHandler drives picker sessions over HTTP.
type SelectionHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Location *time.Location
	Logger   *slog.Logger
}

type startSelectionRequest struct {
	Start string `json:"start"`
	Days  int    `json:"days"`
}

type pickDateRequest struct {
	Date string `json:"date"`
}

type setGuestsRequest struct {
	Guests int `json:"guests"`
}

func (h SelectionHandler) Start(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req startSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithCode(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}
	start, err := parseDate(req.Start, h.Location)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	cmd := selectionapp.StartSelectionCommand{
		ListingID:       c.Param("id"),
		Start:           start,
		Days:            req.Days,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[selectionapp.StartSelectionCommand, dto.Selection](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	c.Header("Location", "/api/v1/selections/"+result.ID)
	c.JSON(http.StatusCreated, result)
}

func (h SelectionHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	query := selectionapp.GetSelectionQuery{SessionID: c.Param("id")}
	result, err := queries.Ask[selectionapp.GetSelectionQuery, dto.Selection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Pick applies {"date":"YYYY-MM-DD"}; an empty body or date picks the first available date.
func (h SelectionHandler) Pick(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req pickDateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithCode(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}
	date, err := parseDate(req.Date, h.Location)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	cmd := selectionapp.PickDateCommand{SessionID: c.Param("id"), Date: date}
	h.dispatch(c, cmd)
}

func (h SelectionHandler) SetGuests(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req setGuestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithCode(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}
	h.dispatch(c, selectionapp.SetGuestsCommand{SessionID: c.Param("id"), Guests: req.Guests})
}

func (h SelectionHandler) Clear(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	h.dispatch(c, selectionapp.ClearSelectionCommand{SessionID: c.Param("id")})
}

func (h SelectionHandler) dispatch(c *gin.Context, cmd commands.Command) {
	res, err := h.Commands.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		respondWithError(c, h.Logger, err)
		return
	}
	result, ok := res.(dto.Selection)
	if !ok {
		respondWithError(c, h.Logger, commands.ErrResultType)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ SelectionHTTP = SelectionHandler{}
