// README: Destination attractions handler.
package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"triponic/internal/places"
)

type PlacesHandler struct {
	places *places.Service
}

func NewPlacesHandler(svc *places.Service) *PlacesHandler {
	return &PlacesHandler{places: svc}
}

// Attractions handles GET /api/destinations/attractions.
func (h *PlacesHandler) Attractions(c *gin.Context) {
	destination := strings.TrimSpace(c.Query("destination"))
	if destination == "" {
		writeError(c, http.StatusBadRequest, "missing destination")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	results, err := h.places.TopAttractions(c.Request.Context(), destination, limit)
	if err != nil {
		log.Printf("attractions lookup: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"data": results})
}
