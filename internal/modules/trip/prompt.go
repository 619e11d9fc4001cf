// README: Deterministic prompt rendering and conversation windowing.
package trip

import (
	"fmt"
	"math"
	"strings"
)

// chatHistoryWindow bounds how much prior dialogue is fed to the model.
// Older history is silently dropped; the full log stays in the
// conversation store.
const chatHistoryWindow = 10

// notSpecified stands in for every absent preference field so prompts stay
// deterministic regardless of how sparse the preference is.
const notSpecified = "Not specified"

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return notSpecified
	}
	return v
}

// computeDuration derives the trip length in whole days. When both dates are
// present the binding value is ceil(end - start); any free-text duration on
// the preference is ignored. Without a usable range the fixed default applies.
func computeDuration(p TravelPreference) int {
	if p.StartDate == nil || p.EndDate == nil {
		return DefaultDurationDays
	}
	days := int(math.Ceil(p.EndDate.Sub(*p.StartDate).Hours() / 24))
	if days <= 0 {
		return DefaultDurationDays
	}
	return days
}

// recentWindow returns the most recent n messages in original order.
func recentWindow(msgs []Message, n int) []Message {
	if len(msgs) <= n {
		return msgs
	}
	return msgs[len(msgs)-n:]
}

// itinerarySystemPrompt renders the synthesis instruction. It embeds the
// preference, mandates exactly `duration` day entries with morning, afternoon
// and evening activities, and pins the exact JSON shape the validator expects.
func itinerarySystemPrompt(p TravelPreference, duration int) string {
	return fmt.Sprintf(`You are an expert travel planner. Create a detailed travel itinerary based on the following preferences:
Destination type: %s
Custom destination: %s
Duration: %d days
Budget: %s
Interests: %s
Pace: %s

IMPORTANT: You MUST generate exactly %d days of activities. Each day MUST include morning, afternoon, and evening activities.
Do not abbreviate or summarize the itinerary.

The response MUST be a valid JSON object with the following structure:
{
  "title": "string",
  "destination": "string",
  "duration": "string",
  "summary": "string",
  "tripOverview": {
    "budget": "string",
    "pace": "string",
    "travelStyle": "string"
  },
  "days": [
    {
      "dayNumber": "number",
      "title": "string",
      "morning": {
        "activity": "string",
        "description": "string"
      },
      "afternoon": {
        "activity": "string",
        "description": "string"
      },
      "evening": {
        "activity": "string",
        "description": "string"
      },
      "travelTips": ["string"],
      "image": "string (Unsplash URL)"
    }
  ],
  "accommodations": [
    {
      "name": "string",
      "rating": "number",
      "priceRange": "string",
      "description": "string",
      "type": "string",
      "image": "string (Unsplash URL)"
    }
  ]
}`,
		orNotSpecified(p.DestinationType),
		orNotSpecified(p.CustomDestination),
		duration,
		orNotSpecified(p.Budget),
		orNotSpecified(p.Interests),
		orNotSpecified(p.Pace),
		duration,
	)
}

// itineraryUserMessage renders the bounded conversation as extra context for
// synthesis, or falls back to a generic instruction when there is none.
func itineraryUserMessage(conv *Conversation) string {
	if conv == nil || len(conv.Messages) == 0 {
		return "Generate a detailed travel itinerary based on my preferences."
	}
	var b strings.Builder
	b.WriteString("Additional context from conversation:\n")
	for i, m := range recentWindow(conv.Messages, chatHistoryWindow) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.ToUpper(string(m.Role)))
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}

// extractionSystemPrompt is the fixed instruction for turning free text into
// a partial preference. It enumerates the exact categorical values the
// application recognizes so the model cannot invent new ones.
const extractionSystemPrompt = `You are an expert travel assistant. Analyze the user's natural language input and extract structured travel preferences.
Extract the following information if present:
- Destination type (beach, city, mountains, culture, adventure, countryside)
- Custom destination (specific location or country)
- Duration (weekend, short, standard, long)
- Budget (budget, midrange, luxury)
- Interests
- Pace (relaxed, moderate, active)
- Companions (solo, couple, family, friends, group)
- Activities
- Meal preferences (local, fine-dining, street-food, international)
- Dietary restrictions (none, vegetarian, vegan, gluten-free, dairy-free, halal, kosher)
- Accommodation (hotel, resort, vacation-rental, boutique, hostel, camping)
- Transportation mode (rental-car, public-transit, walking-biking, guided-tours, ride-services)
- Additional notes

Output ONLY a JSON object with these fields. If information is not present, don't include the field.`

// chatSystemPrompt renders the assistant persona plus the full current
// preference snapshot for a conversational turn.
func chatSystemPrompt(p TravelPreference) string {
	return fmt.Sprintf(`You are a helpful travel assistant helping a user plan their trip.

The user has these travel preferences:
Destination type: %s
Custom destination: %s
Duration: %s
Budget: %s
Interests: %s
Pace: %s
Companions: %s
Activities: %s
Meal Preferences: %s
Dietary Restrictions: %s
Accommodation Type: %s
Transportation Mode: %s

Provide helpful, friendly advice for their trip planning. Ask follow-up questions to gather more details about their interests, preferred activities, must-see attractions, dietary preferences, and any specific requirements. Your goal is to collect enough information to create a personalized travel itinerary.
Keep responses conversational, concise, and focused on helping the user plan their perfect trip. You work for Triponic, an AI-powered travel assistant.`,
		orNotSpecified(p.DestinationType),
		orNotSpecified(p.CustomDestination),
		orNotSpecified(p.Duration),
		orNotSpecified(p.Budget),
		orNotSpecified(p.Interests),
		orNotSpecified(p.Pace),
		orNotSpecified(p.Companions),
		orNotSpecified(p.Activities),
		orNotSpecified(p.MealPreferences),
		orNotSpecified(p.DietaryRestrictions),
		orNotSpecified(p.Accommodation),
		orNotSpecified(p.TransportationMode),
	)
}
