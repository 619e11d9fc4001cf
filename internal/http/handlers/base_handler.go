// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"triponic/internal/modules/flight"
	"triponic/internal/modules/trip"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeTripError maps trip failures onto HTTP statuses. Model misbehavior is
// a bad gateway, not a client error: the caller may simply retry.
func writeTripError(c *gin.Context, err error) {
	var dayErr *trip.DayCountError
	switch {
	case errors.Is(err, trip.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrEmptyResponse):
		writeJSON(c, http.StatusBadGateway, errorResponse{
			Error: "Failed to generate itinerary",
			Code:  "EMPTY_RESPONSE",
		})
	case errors.Is(err, trip.ErrMalformedResponse):
		writeJSON(c, http.StatusBadGateway, errorResponse{
			Error: "Failed to generate itinerary",
			Code:  "MALFORMED_RESPONSE",
		})
	case errors.As(err, &dayErr):
		writeJSON(c, http.StatusBadGateway, errorResponse{
			Error:   "Failed to generate itinerary",
			Details: dayErr.Error(),
			Code:    "DAY_COUNT_MISMATCH",
		})
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// writeFlightError maps flight search failures. Provider codes are echoed so
// the client can distinguish quota problems from transient failures.
func writeFlightError(c *gin.Context, err error) {
	var perr *flight.ProviderError
	switch {
	case errors.Is(err, flight.ErrMissingFields):
		writeJSON(c, http.StatusBadRequest, errorResponse{
			Error:   "Missing required fields",
			Details: "Origin, destination, and departure date are required",
		})
	case errors.As(err, &perr):
		writeJSON(c, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to fetch flight data",
			Details: perr.Detail,
			Code:    perr.Code,
		})
	default:
		writeJSON(c, http.StatusInternalServerError, errorResponse{
			Error: "Failed to fetch flight data",
			Code:  flight.GenericProviderCode,
		})
	}
}
