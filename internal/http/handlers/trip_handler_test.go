// README: Handler tests covering the itinerary, chat, and flight endpoints.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"triponic/internal/ai"
	"triponic/internal/cache"
	"triponic/internal/http/handlers"
	"triponic/internal/modules/flight"
	"triponic/internal/modules/trip"
)

// stubProvider is a test double for ai.Provider.
type stubProvider struct {
	resp string
	err  error
}

func (s *stubProvider) Complete(_ context.Context, _ ai.Request) (string, error) {
	return s.resp, s.err
}

// fakeStore is an in-memory test double for handlers.TripStore.
type fakeStore struct {
	prefs       map[string]*trip.TravelPreference
	convs       map[string]*trip.Conversation
	itineraries map[string]*trip.StoredItinerary
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		prefs:       map[string]*trip.TravelPreference{},
		convs:       map[string]*trip.Conversation{},
		itineraries: map[string]*trip.StoredItinerary{},
	}
}

func (f *fakeStore) CreatePreference(_ context.Context, p *trip.TravelPreference) error {
	f.prefs[p.ID] = p
	return nil
}

func (f *fakeStore) GetPreference(_ context.Context, id string) (*trip.TravelPreference, error) {
	p, ok := f.prefs[id]
	if !ok {
		return nil, trip.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) CreateConversation(_ context.Context, c *trip.Conversation) error {
	f.convs[c.ID] = c
	return nil
}

func (f *fakeStore) GetConversation(_ context.Context, id string) (*trip.Conversation, error) {
	c, ok := f.convs[id]
	if !ok {
		return nil, trip.ErrNotFound
	}
	cp := *c
	cp.Messages = append([]trip.Message(nil), c.Messages...)
	return &cp, nil
}

func (f *fakeStore) AppendMessage(_ context.Context, id string, m trip.Message) error {
	c, ok := f.convs[id]
	if !ok {
		return trip.ErrNotFound
	}
	c.Messages = append(c.Messages, m)
	return nil
}

func (f *fakeStore) SaveItinerary(_ context.Context, it *trip.StoredItinerary) error {
	f.itineraries[it.ID] = it
	return nil
}

func (f *fakeStore) GetItinerary(_ context.Context, id string) (*trip.StoredItinerary, error) {
	it, ok := f.itineraries[id]
	if !ok {
		return nil, trip.ErrNotFound
	}
	return it, nil
}

func buildTestRouter(provider ai.Provider, store handlers.TripStore, flights *flight.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := handlers.NewTripHandler(trip.NewService(provider), store)
	r.POST("/api/preferences", h.CreatePreference)
	r.GET("/api/preferences/:id", h.GetPreference)
	r.POST("/api/conversations/:id/messages", h.PostMessage)
	r.POST("/api/generate-itinerary", h.GenerateItinerary)
	r.GET("/api/itineraries/:id", h.GetItinerary)

	if flights != nil {
		fh := handlers.NewFlightHandler(flights)
		r.POST("/api/flights/search", fh.Search)
	}
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itineraryJSON(days int) string {
	plans := make([]trip.DayPlan, 0, days)
	for i := 1; i <= days; i++ {
		plans = append(plans, trip.DayPlan{
			DayNumber: i,
			Title:     fmt.Sprintf("Day %d", i),
			Morning:   trip.ActivitySlot{Activity: "Surf lesson", Description: "Morning waves"},
			Afternoon: trip.ActivitySlot{Activity: "Market walk", Description: "Local crafts"},
			Evening:   trip.ActivitySlot{Activity: "Dinner", Description: "Beachfront grill"},
		})
	}
	raw, _ := json.Marshal(trip.GeneratedItinerary{Title: "Beach Escape", Destination: "Bali", Days: plans})
	return string(raw)
}

func seedPreference(store *fakeStore) *trip.TravelPreference {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC)
	pref := &trip.TravelPreference{
		ID:              "pref-1",
		DestinationType: "beach",
		StartDate:       &start,
		EndDate:         &end,
	}
	store.prefs[pref.ID] = pref
	return pref
}

func TestGenerateItinerary_Success(t *testing.T) {
	store := newFakeStore()
	seedPreference(store)
	r := buildTestRouter(&stubProvider{resp: itineraryJSON(3)}, store, nil)

	w := doRequest(r, http.MethodPost, "/api/generate-itinerary", map[string]any{"preferenceId": "pref-1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var stored trip.StoredItinerary
	if err := json.Unmarshal(w.Body.Bytes(), &stored); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(stored.Itinerary.Days) != 3 {
		t.Errorf("expected 3 days, got %d", len(stored.Itinerary.Days))
	}
	if stored.ID == "" || stored.PreferenceID != "pref-1" {
		t.Errorf("stored identity wrong: %+v", stored)
	}
	if len(store.itineraries) != 1 {
		t.Errorf("itinerary was not persisted")
	}
}

func TestGenerateItinerary_DayCountMismatch(t *testing.T) {
	store := newFakeStore()
	seedPreference(store)
	r := buildTestRouter(&stubProvider{resp: itineraryJSON(2)}, store, nil)

	w := doRequest(r, http.MethodPost, "/api/generate-itinerary", map[string]any{"preferenceId": "pref-1"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	var resp struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "DAY_COUNT_MISMATCH" {
		t.Errorf("expected DAY_COUNT_MISMATCH, got %q", resp.Code)
	}
	if len(store.itineraries) != 0 {
		t.Error("rejected result must not be persisted")
	}
}

func TestGenerateItinerary_UnknownPreference(t *testing.T) {
	r := buildTestRouter(&stubProvider{resp: itineraryJSON(3)}, newFakeStore(), nil)
	w := doRequest(r, http.MethodPost, "/api/generate-itinerary", map[string]any{"preferenceId": "ghost"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestGenerateItinerary_MissingPreferenceID(t *testing.T) {
	r := buildTestRouter(&stubProvider{resp: itineraryJSON(3)}, newFakeStore(), nil)
	w := doRequest(r, http.MethodPost, "/api/generate-itinerary", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreatePreference_ParsesDates(t *testing.T) {
	store := newFakeStore()
	r := buildTestRouter(&stubProvider{}, store, nil)

	w := doRequest(r, http.MethodPost, "/api/preferences", map[string]any{
		"destinationType": "beach",
		"startDate":       "2024-06-01",
		"endDate":         "2024-06-04",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.prefs) != 1 {
		t.Fatal("preference not persisted")
	}
	for _, p := range store.prefs {
		if p.StartDate == nil || p.EndDate == nil {
			t.Error("dates were not parsed")
		}
	}
}

func TestCreatePreference_RejectsBadDate(t *testing.T) {
	r := buildTestRouter(&stubProvider{}, newFakeStore(), nil)
	w := doRequest(r, http.MethodPost, "/api/preferences", map[string]any{
		"destinationType": "beach",
		"startDate":       "06/01/2024",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestPostMessage_AppendsBothTurns(t *testing.T) {
	store := newFakeStore()
	store.convs["conv-1"] = &trip.Conversation{ID: "conv-1"}
	r := buildTestRouter(&stubProvider{resp: "How about Lisbon in May?"}, store, nil)

	w := doRequest(r, http.MethodPost, "/api/conversations/conv-1/messages", map[string]any{
		"content": "Where should I go in spring?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Reply string `json:"reply"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Reply != "How about Lisbon in May?" {
		t.Errorf("unexpected reply: %q", resp.Reply)
	}

	msgs := store.convs["conv-1"].Messages
	if len(msgs) != 2 {
		t.Fatalf("expected user+assistant turns in the log, got %d", len(msgs))
	}
	if msgs[0].Role != ai.RoleUser || msgs[1].Role != ai.RoleAssistant {
		t.Errorf("roles wrong in log: %+v", msgs)
	}
}

func TestFlightSearch_MissingFields(t *testing.T) {
	provider := &countingFlightProvider{}
	svc := flight.NewService(provider, cache.NewMemory())
	r := buildTestRouter(&stubProvider{}, newFakeStore(), svc)

	w := doRequest(r, http.MethodPost, "/api/flights/search", map[string]any{
		"originLocationCode":      "JFK",
		"destinationLocationCode": "LAX",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error != "Missing required fields" {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
	if provider.calls != 0 {
		t.Errorf("provider must not be contacted, got %d calls", provider.calls)
	}
}

type countingFlightProvider struct {
	calls int
}

func (p *countingFlightProvider) SearchFlightOffers(_ context.Context, _ flight.SearchRequest) (json.RawMessage, error) {
	p.calls++
	return json.RawMessage(`{"meta":{"count":1},"data":[{"id":"1"}]}`), nil
}

func TestFlightSearch_HitAndMissShapes(t *testing.T) {
	provider := &countingFlightProvider{}
	svc := flight.NewService(provider, cache.NewMemory())
	r := buildTestRouter(&stubProvider{}, newFakeStore(), svc)

	body := map[string]any{
		"originLocationCode":      "JFK",
		"destinationLocationCode": "LAX",
		"departureDate":           "2024-06-01",
	}

	// Miss: the provider envelope passes through untouched.
	w := doRequest(r, http.MethodPost, "/api/flights/search", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != `{"meta":{"count":1},"data":[{"id":"1"}]}` {
		t.Errorf("miss must return the provider envelope, got %s", w.Body.String())
	}

	// Hit: the cached offer list comes back wrapped as {data: [...]}.
	w = doRequest(r, http.MethodPost, "/api/flights/search", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var hit struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &hit); err != nil {
		t.Fatalf("unmarshal hit response: %v (%s)", err, w.Body.String())
	}
	if len(hit.Data) != 1 || hit.Data[0].ID != "1" {
		t.Errorf("unexpected hit payload: %s", w.Body.String())
	}
	if provider.calls != 1 {
		t.Errorf("expected one provider call, got %d", provider.calls)
	}
}

func TestFlightSearch_ProviderErrorCodeEchoed(t *testing.T) {
	svc := flight.NewService(&failingFlightProvider{}, cache.NewMemory())
	r := buildTestRouter(&stubProvider{}, newFakeStore(), svc)

	w := doRequest(r, http.MethodPost, "/api/flights/search", map[string]any{
		"originLocationCode":      "JFK",
		"destinationLocationCode": "LAX",
		"departureDate":           "2024-06-01",
	})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp struct {
		Code string `json:"code"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != "38190" {
		t.Errorf("provider code must be echoed, got %q", resp.Code)
	}
}

type failingFlightProvider struct{}

func (failingFlightProvider) SearchFlightOffers(_ context.Context, _ flight.SearchRequest) (json.RawMessage, error) {
	return nil, &flight.ProviderError{Code: "38190", Status: 401, Detail: "Invalid access token"}
}
