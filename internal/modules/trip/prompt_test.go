package trip

import (
	"strings"
	"testing"

	"triponic/internal/ai"
)

func TestItinerarySystemPrompt_NotSpecifiedFallbacks(t *testing.T) {
	prompt := itinerarySystemPrompt(TravelPreference{DestinationType: "beach"}, 3)

	if !strings.Contains(prompt, "Destination type: beach") {
		t.Error("present fields must be rendered verbatim")
	}
	if !strings.Contains(prompt, "Budget: Not specified") {
		t.Error("absent fields must render as Not specified")
	}
	if !strings.Contains(prompt, "MUST generate exactly 3 days") {
		t.Error("prompt must mandate the exact day count")
	}
}

func TestItinerarySystemPrompt_Deterministic(t *testing.T) {
	pref := TravelPreference{DestinationType: "city", Budget: "luxury", Pace: "relaxed"}
	if itinerarySystemPrompt(pref, 5) != itinerarySystemPrompt(pref, 5) {
		t.Error("rendering the same preference twice must be identical")
	}
}

func TestChatSystemPrompt_AllFields(t *testing.T) {
	prompt := chatSystemPrompt(TravelPreference{
		DestinationType:     "mountains",
		DietaryRestrictions: "vegan",
	})
	if !strings.Contains(prompt, "Destination type: mountains") {
		t.Error("destination type missing")
	}
	if !strings.Contains(prompt, "Dietary Restrictions: vegan") {
		t.Error("dietary restrictions missing")
	}
	if !strings.Contains(prompt, "Transportation Mode: Not specified") {
		t.Error("absent transportation mode must fall back")
	}
	if !strings.Contains(prompt, "Triponic") {
		t.Error("assistant persona missing")
	}
}

func TestItineraryUserMessage_GenericWithoutConversation(t *testing.T) {
	got := itineraryUserMessage(nil)
	if got != "Generate a detailed travel itinerary based on my preferences." {
		t.Errorf("unexpected default instruction: %q", got)
	}
	if itineraryUserMessage(&Conversation{}) != got {
		t.Error("an empty conversation must fall back to the generic instruction")
	}
}

func TestRecentWindow(t *testing.T) {
	var msgs []Message
	for i := 0; i < 4; i++ {
		msgs = append(msgs, Message{Role: ai.RoleUser, Content: string(rune('a' + i))})
	}

	if got := recentWindow(msgs, 10); len(got) != 4 {
		t.Errorf("short history must pass through unchanged, got %d", len(got))
	}
	got := recentWindow(msgs, 2)
	if len(got) != 2 || got[0].Content != "c" || got[1].Content != "d" {
		t.Errorf("window must keep the tail in order, got %+v", got)
	}
}
