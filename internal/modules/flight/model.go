// README: Flight search domain model and failure taxonomy.
package flight

import (
	"errors"
	"fmt"
)

// ErrMissingFields marks a search request that failed validation. The caller
// can correct and resubmit; no provider call was made.
var ErrMissingFields = errors.New("missing required fields")

// ProviderError wraps a failure from the external flight-search provider.
// Code carries the provider's own error code when one was available so it
// can be echoed to the client.
type ProviderError struct {
	Code   string
	Status int
	Detail string
}

func (e *ProviderError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("flight provider error %s: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("flight provider error %s", e.Code)
}

// GenericProviderCode is used when the provider failed without reporting a
// code of its own (network failure, unreadable response).
const GenericProviderCode = "INTERNAL_SERVER_ERROR"

const (
	defaultAdults = 1
	defaultMax    = 10
)

// SearchRequest is a validated flight-offer search. Origin, Destination and
// DepartureDate identify the search; Adults and Max only shape the result
// set and are deliberately excluded from the cache key.
type SearchRequest struct {
	Origin        string
	Destination   string
	DepartureDate string
	Adults        int
	Max           int
}
