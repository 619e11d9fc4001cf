// README: Amadeus self-service API client (OAuth2 + flight offers search).
package flight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultAmadeusBaseURL points at the Amadeus self-service test environment;
// production deployments override it via configuration.
const DefaultAmadeusBaseURL = "https://test.api.amadeus.com"

// searchCurrency is fixed; price localization is not a concern of this service.
const searchCurrency = "USD"

// amadeusHTTPClient is used for all Amadeus requests; the 30s timeout guards against
// stalled connections while context cancellation is still honoured via NewRequestWithContext.
var amadeusHTTPClient = &http.Client{Timeout: 30 * time.Second}

// AmadeusClient talks to the Amadeus flight-offers API. Access tokens are
// obtained with the client-credentials grant and cached until shortly before
// their reported expiry.
type AmadeusClient struct {
	baseURL      string
	clientID     string
	clientSecret string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewAmadeusClient creates a client for the given API credentials.
// baseURL may be empty to use the test environment.
func NewAmadeusClient(baseURL, clientID, clientSecret string) *AmadeusClient {
	if baseURL == "" {
		baseURL = DefaultAmadeusBaseURL
	}
	return &AmadeusClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

type amadeusTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// amadeusErrorEnvelope is the provider's error body. Codes are numeric in
// the Amadeus API and are carried here as their decimal string form.
type amadeusErrorEnvelope struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// accessToken returns a cached token, refreshing it when it is within 30
// seconds of expiry.
func (c *AmadeusClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Add(30*time.Second).Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("amadeus: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := amadeusHTTPClient.Do(req)
	if err != nil {
		return "", &ProviderError{Code: GenericProviderCode, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Code: GenericProviderCode, Detail: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return "", providerErrorFromBody(resp.StatusCode, body)
	}

	var tr amadeusTokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return "", &ProviderError{Code: GenericProviderCode, Status: resp.StatusCode, Detail: "unusable token response"}
	}

	c.token = tr.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return c.token, nil
}

// SearchFlightOffers calls GET /v2/shopping/flight-offers and returns the
// provider's native response envelope untouched. Failures are mapped to
// *ProviderError; this client never retries.
func (c *AmadeusClient) SearchFlightOffers(ctx context.Context, sr SearchRequest) (json.RawMessage, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("originLocationCode", sr.Origin)
	q.Set("destinationLocationCode", sr.Destination)
	q.Set("departureDate", sr.DepartureDate)
	q.Set("adults", strconv.Itoa(sr.Adults))
	q.Set("max", strconv.Itoa(sr.Max))
	q.Set("currencyCode", searchCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/shopping/flight-offers?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("amadeus: build search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := amadeusHTTPClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Code: GenericProviderCode, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Code: GenericProviderCode, Detail: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, providerErrorFromBody(resp.StatusCode, body)
	}

	return body, nil
}

// providerErrorFromBody lifts the provider's own code and detail out of an
// error response when the body is parseable, and degrades to the generic
// code when it is not.
func providerErrorFromBody(status int, body []byte) *ProviderError {
	var env amadeusErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Errors) > 0 {
		first := env.Errors[0]
		detail := first.Detail
		if detail == "" {
			detail = first.Title
		}
		return &ProviderError{
			Code:   strconv.Itoa(first.Code),
			Status: status,
			Detail: detail,
		}
	}
	return &ProviderError{Code: GenericProviderCode, Status: status, Detail: "unreadable provider response"}
}
