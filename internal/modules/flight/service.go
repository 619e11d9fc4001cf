// README: Cache-first flight search gateway.
package flight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"triponic/internal/cache"
)

// CacheTTL bounds how long a result set is served without consulting the
// provider again. Five minutes is short enough for fare freshness and long
// enough to absorb a burst of identical searches.
const CacheTTL = 300 * time.Second

// Provider is the external flight-offers search. The gateway treats its
// payload as opaque except for lifting the raw result set for caching.
type Provider interface {
	SearchFlightOffers(ctx context.Context, sr SearchRequest) (json.RawMessage, error)
}

// SearchResult is the outcome of one gateway search. On a cache hit Payload
// is the raw cached offer list; on a miss it is the provider's native
// envelope, as the client contract requires.
type SearchResult struct {
	Payload   json.RawMessage
	FromCache bool
}

// Service validates search requests and runs the
// validate -> cache lookup -> provider call -> cache store flow.
// Concurrent misses for the same key may call the provider twice; both
// writes are equivalent and last write wins, so no coalescing is done here.
type Service struct {
	provider Provider
	cache    cache.Cache
	ttl      time.Duration
}

func NewService(provider Provider, c cache.Cache) *Service {
	return &Service{provider: provider, cache: c, ttl: CacheTTL}
}

// NewServiceWithTTL exists for tests and deployments that tune freshness.
func NewServiceWithTTL(provider Provider, c cache.Cache, ttl time.Duration) *Service {
	return &Service{provider: provider, cache: c, ttl: ttl}
}

// Search returns flight offers for the request. Validation failures return
// ErrMissingFields before any provider contact; provider failures surface
// as *ProviderError and are never retried here.
func (s *Service) Search(ctx context.Context, sr SearchRequest) (SearchResult, error) {
	sr.Origin = strings.TrimSpace(sr.Origin)
	sr.Destination = strings.TrimSpace(sr.Destination)
	sr.DepartureDate = strings.TrimSpace(sr.DepartureDate)
	if sr.Origin == "" || sr.Destination == "" || sr.DepartureDate == "" {
		return SearchResult{}, ErrMissingFields
	}
	if sr.Adults <= 0 {
		sr.Adults = defaultAdults
	}
	if sr.Max <= 0 {
		sr.Max = defaultMax
	}

	key := cacheKey(sr)
	if payload, ok := s.cache.Get(ctx, key); ok {
		return SearchResult{Payload: payload, FromCache: true}, nil
	}

	envelope, err := s.provider.SearchFlightOffers(ctx, sr)
	if err != nil {
		return SearchResult{}, err
	}

	// Cache the raw result set, not the whole envelope; the envelope's meta
	// block (links, counts) is request-specific.
	var parsed struct {
		Data json.RawMessage `json:"data"`
	}
	if jsonErr := json.Unmarshal(envelope, &parsed); jsonErr == nil && len(parsed.Data) > 0 {
		s.cache.Set(ctx, key, parsed.Data, s.ttl)
	}

	return SearchResult{Payload: envelope, FromCache: false}, nil
}

// cacheKey derives the cache identity from the fields that determine the
// result set. Adults and Max shape pagination, not identity, and are
// deliberately left out.
func cacheKey(sr SearchRequest) string {
	return fmt.Sprintf("flights:%s:%s:%s", sr.Origin, sr.Destination, sr.DepartureDate)
}
