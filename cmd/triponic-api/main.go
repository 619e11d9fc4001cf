// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"

	"triponic/internal/ai"
	"triponic/internal/cache"
	"triponic/internal/config"
	httptransport "triponic/internal/http"
	"triponic/internal/infra"
	"triponic/internal/modules/flight"
	"triponic/internal/modules/trip"
	"triponic/internal/places"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	tripStore := trip.NewStore(dbPool)
	tripSvc := trip.NewService(provider)

	var searchCache cache.Cache = cache.NewMemory()
	if cfg.Redis.Addr != "" {
		searchCache = cache.NewRedis(infra.NewRedis(cfg.Redis.Addr))
	}

	amadeus := flight.NewAmadeusClient(cfg.Amadeus.BaseURL, cfg.Amadeus.ClientID, cfg.Amadeus.ClientSecret)
	flightSvc := flight.NewService(amadeus, searchCache)

	var placesSvc *places.Service
	if cfg.Maps.APIKey != "" {
		placesSvc, err = places.NewService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("places init: %v", err)
		}
	}

	handler := httptransport.NewRouter(httptransport.Deps{
		Trip:      tripSvc,
		TripStore: tripStore,
		Flights:   flightSvc,
		Places:    placesSvc,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: cors.Default().Handler(handler)}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
