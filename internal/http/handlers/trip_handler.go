// README: Trip handlers: preferences, conversations, chat, itinerary generation.
package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"triponic/internal/ai"
	"triponic/internal/modules/trip"
)

const dateLayout = "2006-01-02"

// Per-request deadlines are imposed here, at the transport edge; the domain
// services themselves enforce none.
const (
	synthesisTimeout = 60 * time.Second
	chatTimeout      = 30 * time.Second
)

// TripStore is the persistence surface the handlers depend on. It matches
// *trip.Store and allows a fake in tests.
type TripStore interface {
	CreatePreference(ctx context.Context, p *trip.TravelPreference) error
	GetPreference(ctx context.Context, id string) (*trip.TravelPreference, error)
	CreateConversation(ctx context.Context, c *trip.Conversation) error
	GetConversation(ctx context.Context, id string) (*trip.Conversation, error)
	AppendMessage(ctx context.Context, conversationID string, m trip.Message) error
	SaveItinerary(ctx context.Context, it *trip.StoredItinerary) error
	GetItinerary(ctx context.Context, id string) (*trip.StoredItinerary, error)
}

type TripHandler struct {
	trip  *trip.Service
	store TripStore
}

func NewTripHandler(svc *trip.Service, store TripStore) *TripHandler {
	return &TripHandler{trip: svc, store: store}
}

type createPreferenceReq struct {
	DestinationType     string `json:"destinationType"`
	CustomDestination   string `json:"customDestination"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
	Duration            string `json:"duration"`
	Budget              string `json:"budget"`
	Interests           string `json:"interests"`
	Pace                string `json:"pace"`
	Companions          string `json:"companions"`
	Activities          string `json:"activities"`
	MealPreferences     string `json:"mealPreferences"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	Accommodation       string `json:"accommodation"`
	TransportationMode  string `json:"transportationMode"`
}

// CreatePreference handles POST /api/preferences.
func (h *TripHandler) CreatePreference(c *gin.Context) {
	var req createPreferenceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.DestinationType == "" && req.CustomDestination == "" {
		writeError(c, http.StatusBadRequest, "missing destination")
		return
	}

	pref := trip.TravelPreference{
		ID:                  uuid.NewString(),
		DestinationType:     req.DestinationType,
		CustomDestination:   req.CustomDestination,
		Duration:            req.Duration,
		Budget:              req.Budget,
		Interests:           req.Interests,
		Pace:                req.Pace,
		Companions:          req.Companions,
		Activities:          req.Activities,
		MealPreferences:     req.MealPreferences,
		DietaryRestrictions: req.DietaryRestrictions,
		Accommodation:       req.Accommodation,
		TransportationMode:  req.TransportationMode,
		CreatedAt:           time.Now().UTC(),
	}

	for _, d := range []struct {
		raw  string
		dest **time.Time
	}{
		{req.StartDate, &pref.StartDate},
		{req.EndDate, &pref.EndDate},
	} {
		if d.raw == "" {
			continue
		}
		t, err := time.Parse(dateLayout, d.raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "dates must be YYYY-MM-DD")
			return
		}
		*d.dest = &t
	}

	if err := h.store.CreatePreference(c.Request.Context(), &pref); err != nil {
		log.Printf("create preference: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusCreated, pref)
}

// GetPreference handles GET /api/preferences/:id.
func (h *TripHandler) GetPreference(c *gin.Context) {
	pref, err := h.store.GetPreference(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, pref)
}

type extractReq struct {
	Input string `json:"input"`
}

// ExtractPreferences handles POST /api/preferences/extract. The returned
// patch is not persisted; the client merges it into a draft preference.
func (h *TripHandler) ExtractPreferences(c *gin.Context) {
	var req extractReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeError(c, http.StatusBadRequest, "missing input")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
	defer cancel()

	patch, err := h.trip.ExtractPreferences(ctx, req.Input)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, patch)
}

type createConversationReq struct {
	PreferenceID string `json:"preferenceId"`
}

// CreateConversation handles POST /api/conversations.
func (h *TripHandler) CreateConversation(c *gin.Context) {
	var req createConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PreferenceID != "" {
		if _, err := h.store.GetPreference(c.Request.Context(), req.PreferenceID); err != nil {
			writeTripError(c, err)
			return
		}
	}

	conv := trip.Conversation{
		ID:           uuid.NewString(),
		PreferenceID: req.PreferenceID,
		Messages:     []trip.Message{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.store.CreateConversation(c.Request.Context(), &conv); err != nil {
		log.Printf("create conversation: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusCreated, conv)
}

type postMessageReq struct {
	Content string `json:"content"`
}

// PostMessage handles POST /api/conversations/:id/messages. It appends the
// user's message, generates the assistant turn, appends that too, and
// returns the reply. The reply may be the chat fallback string; that is a
// 200, not an error, by design.
func (h *TripHandler) PostMessage(c *gin.Context) {
	var req postMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(c, http.StatusBadRequest, "missing content")
		return
	}

	conv, err := h.store.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeTripError(c, err)
		return
	}

	var pref trip.TravelPreference
	if conv.PreferenceID != "" {
		p, err := h.store.GetPreference(c.Request.Context(), conv.PreferenceID)
		if err != nil {
			writeTripError(c, err)
			return
		}
		pref = *p
	}

	userMsg := trip.Message{Role: ai.RoleUser, Content: req.Content}
	if err := h.store.AppendMessage(c.Request.Context(), conv.ID, userMsg); err != nil {
		log.Printf("append user message: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	conv.Messages = append(conv.Messages, userMsg)

	ctx, cancel := context.WithTimeout(c.Request.Context(), chatTimeout)
	defer cancel()
	reply := h.trip.ChatReply(ctx, pref, *conv)

	assistantMsg := trip.Message{Role: ai.RoleAssistant, Content: reply}
	if err := h.store.AppendMessage(c.Request.Context(), conv.ID, assistantMsg); err != nil {
		log.Printf("append assistant message: %v", err)
	}

	writeJSON(c, http.StatusOK, gin.H{"reply": reply})
}

type generateItineraryReq struct {
	PreferenceID   string `json:"preferenceId"`
	ConversationID string `json:"conversationId"`
}

// GenerateItinerary handles POST /api/generate-itinerary. Persisting the
// validated result is this handler's job, not the synthesizer's.
func (h *TripHandler) GenerateItinerary(c *gin.Context) {
	var req generateItineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PreferenceID == "" {
		writeError(c, http.StatusBadRequest, "missing preferenceId")
		return
	}

	pref, err := h.store.GetPreference(c.Request.Context(), req.PreferenceID)
	if err != nil {
		writeTripError(c, err)
		return
	}

	var conv *trip.Conversation
	if req.ConversationID != "" {
		conv, err = h.store.GetConversation(c.Request.Context(), req.ConversationID)
		if err != nil {
			writeTripError(c, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), synthesisTimeout)
	defer cancel()

	itinerary, err := h.trip.GenerateItinerary(ctx, *pref, conv)
	if err != nil {
		writeTripError(c, err)
		return
	}

	stored := trip.StoredItinerary{
		ID:           uuid.NewString(),
		PreferenceID: pref.ID,
		Itinerary:    *itinerary,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.store.SaveItinerary(c.Request.Context(), &stored); err != nil {
		log.Printf("save itinerary: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(c, http.StatusCreated, stored)
}

// GetItinerary handles GET /api/itineraries/:id.
func (h *TripHandler) GetItinerary(c *gin.Context) {
	it, err := h.store.GetItinerary(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}
