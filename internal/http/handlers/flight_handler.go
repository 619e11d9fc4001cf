// README: Flight search handler (cache-first gateway endpoint).
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"triponic/internal/modules/flight"
)

const flightSearchTimeout = 30 * time.Second

type FlightHandler struct {
	flights *flight.Service
}

func NewFlightHandler(svc *flight.Service) *FlightHandler {
	return &FlightHandler{flights: svc}
}

type flightSearchReq struct {
	OriginLocationCode      string `json:"originLocationCode"`
	DestinationLocationCode string `json:"destinationLocationCode"`
	DepartureDate           string `json:"departureDate"`
	Adults                  int    `json:"adults"`
	Max                     int    `json:"max"`
}

// Search handles POST /api/flights/search. A cache hit returns the stored
// offer list wrapped as {data: [...]}; a miss passes the provider's native
// envelope straight through.
func (h *FlightHandler) Search(c *gin.Context) {
	var req flightSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), flightSearchTimeout)
	defer cancel()

	res, err := h.flights.Search(ctx, flight.SearchRequest{
		Origin:        req.OriginLocationCode,
		Destination:   req.DestinationLocationCode,
		DepartureDate: req.DepartureDate,
		Adults:        req.Adults,
		Max:           req.Max,
	})
	if err != nil {
		writeFlightError(c, err)
		return
	}

	if res.FromCache {
		writeJSON(c, http.StatusOK, gin.H{"data": res.Payload})
		return
	}
	c.Data(http.StatusOK, "application/json", res.Payload)
}
