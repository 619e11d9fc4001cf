// README: Trip-planning domain model: preferences, conversations, itineraries.
package trip

import (
	"errors"
	"fmt"
	"time"

	"triponic/internal/ai"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")

	// ErrEmptyResponse means the model returned no payload at all.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrMalformedResponse means the model payload did not parse as the
	// requested schema. The whole result is discarded; there is no
	// best-effort partial acceptance.
	ErrMalformedResponse = errors.New("malformed model response")
)

// DayCountError reports an itinerary whose day list does not match the
// requested trip length. The result is always rejected whole, never padded
// or truncated to fit.
type DayCountError struct {
	Expected int
	Actual   int
}

func (e *DayCountError) Error() string {
	return fmt.Sprintf("generated itinerary has %d days instead of the requested %d", e.Actual, e.Expected)
}

// DefaultDurationDays is the trip length assumed when a preference carries
// no usable date range.
const DefaultDurationDays = 3

// TravelPreference captures the structured requirements driving itinerary
// generation. It is owned by the preference store and treated as immutable
// for the duration of a synthesis call.
type TravelPreference struct {
	ID                  string     `json:"id"`
	DestinationType     string     `json:"destinationType,omitempty"`
	CustomDestination   string     `json:"customDestination,omitempty"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	Duration            string     `json:"duration,omitempty"` // free-text fallback when dates are absent
	Budget              string     `json:"budget,omitempty"`
	Interests           string     `json:"interests,omitempty"`
	Pace                string     `json:"pace,omitempty"`
	Companions          string     `json:"companions,omitempty"`
	Activities          string     `json:"activities,omitempty"`
	MealPreferences     string     `json:"mealPreferences,omitempty"`
	DietaryRestrictions string     `json:"dietaryRestrictions,omitempty"`
	Accommodation       string     `json:"accommodation,omitempty"`
	TransportationMode  string     `json:"transportationMode,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// PreferencePatch is the partial preference extracted from free text.
// Absent fields mean "not inferable from the input", which is valid by
// design; only present fields are merged by the caller.
type PreferencePatch struct {
	DestinationType     string `json:"destinationType,omitempty"`
	CustomDestination   string `json:"customDestination,omitempty"`
	Duration            string `json:"duration,omitempty"`
	Budget              string `json:"budget,omitempty"`
	Interests           string `json:"interests,omitempty"`
	Pace                string `json:"pace,omitempty"`
	Companions          string `json:"companions,omitempty"`
	Activities          string `json:"activities,omitempty"`
	MealPreferences     string `json:"mealPreferences,omitempty"`
	DietaryRestrictions string `json:"dietaryRestrictions,omitempty"`
	Accommodation       string `json:"accommodation,omitempty"`
	TransportationMode  string `json:"transportationMode,omitempty"`
	AdditionalNotes     string `json:"additionalNotes,omitempty"`
}

// Message is one entry of a conversation log. Roles come from the closed
// ai.Role set; unknown roles are rejected before they reach the log.
type Message struct {
	Role    ai.Role `json:"role"`
	Content string  `json:"content"`
}

// Conversation is an append-only dialogue owned by the conversation store.
type Conversation struct {
	ID           string    `json:"id"`
	PreferenceID string    `json:"preferenceId,omitempty"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ActivitySlot is one of the morning/afternoon/evening blocks of a day.
type ActivitySlot struct {
	Activity    string `json:"activity"`
	Description string `json:"description"`
}

// DayPlan is a single day of a generated itinerary.
type DayPlan struct {
	DayNumber  int          `json:"dayNumber"`
	Title      string       `json:"title"`
	Morning    ActivitySlot `json:"morning"`
	Afternoon  ActivitySlot `json:"afternoon"`
	Evening    ActivitySlot `json:"evening"`
	TravelTips []string     `json:"travelTips"`
	Image      string       `json:"image"`
}

// AccommodationOption is a suggested place to stay.
type AccommodationOption struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	PriceRange  string  `json:"priceRange"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Image       string  `json:"image"`
}

// TripOverview summarizes the trip at a glance.
type TripOverview struct {
	Budget      string `json:"budget"`
	Pace        string `json:"pace"`
	TravelStyle string `json:"travelStyle"`
}

// GeneratedItinerary is the validated synthesis result. Its invariant is
// len(Days) == requested duration; a violation invalidates the whole value.
type GeneratedItinerary struct {
	Title          string                `json:"title"`
	Destination    string                `json:"destination"`
	Duration       string                `json:"duration"`
	Summary        string                `json:"summary"`
	TripOverview   TripOverview          `json:"tripOverview"`
	Days           []DayPlan             `json:"days"`
	Accommodations []AccommodationOption `json:"accommodations"`
}

// StoredItinerary wraps a generated itinerary with its persistence identity.
type StoredItinerary struct {
	ID           string             `json:"id"`
	PreferenceID string             `json:"preferenceId"`
	Itinerary    GeneratedItinerary `json:"itinerary"`
	CreatedAt    time.Time          `json:"createdAt"`
}
