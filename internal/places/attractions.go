// README: Destination attractions lookup via Google Places.
package places

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

const defaultLimit = 5

// Attraction is a simplified place result used to enrich a destination page.
type Attraction struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	UserRatingsTotal int     `json:"userRatingsTotal"`
	PlaceID          string  `json:"placeId"`
}

// Service handles interactions with the Google Places API.
type Service struct {
	client *maps.Client
}

// NewService creates a Service with the given API key.
func NewService(apiKey string) (*Service, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Service{client: client}, nil
}

// TopAttractions returns up to limit well-rated sights for a destination.
// Low-rated results are dropped; ordering follows the API's relevance order.
func (s *Service) TopAttractions(ctx context.Context, destination string, limit int) ([]Attraction, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query: fmt.Sprintf("top attractions in %s", destination),
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Attraction
	for _, r := range resp.Results {
		if r.Rating < 4.0 {
			continue
		}
		results = append(results, Attraction{
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
			PlaceID:          r.PlaceID,
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}
