// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"triponic/internal/http/handlers"
	"triponic/internal/http/middleware"
	"triponic/internal/modules/flight"
	"triponic/internal/modules/trip"
	"triponic/internal/places"
)

type Deps struct {
	Trip      *trip.Service
	TripStore handlers.TripStore
	Flights   *flight.Service
	// Places is optional; the attractions route is only registered when set.
	Places *places.Service
}

func NewRouter(deps Deps) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery(), middleware.RateLimit(rate.Limit(20), 40))

	tripHandler := handlers.NewTripHandler(deps.Trip, deps.TripStore)
	r.POST("/api/preferences", tripHandler.CreatePreference)
	r.GET("/api/preferences/:id", tripHandler.GetPreference)
	r.POST("/api/preferences/extract", tripHandler.ExtractPreferences)
	r.POST("/api/conversations", tripHandler.CreateConversation)
	r.POST("/api/conversations/:id/messages", tripHandler.PostMessage)
	r.POST("/api/generate-itinerary", tripHandler.GenerateItinerary)
	r.GET("/api/itineraries/:id", tripHandler.GetItinerary)

	flightHandler := handlers.NewFlightHandler(deps.Flights)
	r.POST("/api/flights/search", flightHandler.Search)

	if deps.Places != nil {
		placesHandler := handlers.NewPlacesHandler(deps.Places)
		r.GET("/api/destinations/attractions", placesHandler.Attractions)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
