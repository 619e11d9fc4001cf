// README: Trip service drives synthesis, extraction, and chat against the LLM.
package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"triponic/internal/ai"
)

const (
	synthesisTemperature  = 0.7
	extractionTemperature = 0.3
	chatTemperature       = 0.7
	chatMaxTokens         = 300
)

// fallbackReply is returned when a conversational turn fails. Chat is the one
// place where failure is absorbed instead of surfaced: a generic retry prompt
// reads better in a dialogue than a hard error.
const fallbackReply = "I'm having trouble processing your request right now. Could you try asking something else?"

// Service orchestrates one-shot model calls for the trip domain. It performs
// no retries and persists nothing; both are the caller's concern.
type Service struct {
	provider ai.Provider
}

func NewService(provider ai.Provider) *Service {
	return &Service{provider: provider}
}

// GenerateItinerary runs a single synthesize/validate cycle. The trip length
// is computed from the preference dates (default 3) and is the binding
// contract value: a response with any other day count is rejected whole.
func (s *Service) GenerateItinerary(ctx context.Context, pref TravelPreference, conv *Conversation) (*GeneratedItinerary, error) {
	duration := computeDuration(pref)

	out, err := s.provider.Complete(ctx, ai.Request{
		Temperature: synthesisTemperature,
		JSONOutput:  true,
		System:      itinerarySystemPrompt(pref, duration),
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: itineraryUserMessage(conv)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("itinerary generation: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return nil, ErrEmptyResponse
	}

	var itinerary GeneratedItinerary
	if err := json.Unmarshal([]byte(out), &itinerary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(itinerary.Days) != duration {
		return nil, &DayCountError{Expected: duration, Actual: len(itinerary.Days)}
	}

	return &itinerary, nil
}

// ExtractPreferences turns free-text input into a partial preference. Unlike
// synthesis, a sparse result is valid: fields the model could not infer are
// simply absent.
func (s *Service) ExtractPreferences(ctx context.Context, input string) (*PreferencePatch, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrBadRequest
	}

	out, err := s.provider.Complete(ctx, ai.Request{
		Temperature: extractionTemperature,
		JSONOutput:  true,
		System:      extractionSystemPrompt,
		Messages: []ai.Message{
			{Role: ai.RoleUser, Content: input},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("preference extraction: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return nil, ErrEmptyResponse
	}

	var patch PreferencePatch
	if err := json.Unmarshal([]byte(out), &patch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &patch, nil
}

// ChatReply produces the assistant's next conversational turn. Only the most
// recent messages are forwarded, roles preserved, in original order. Any
// failure degrades to the fixed fallback string.
func (s *Service) ChatReply(ctx context.Context, pref TravelPreference, conv Conversation) string {
	window := recentWindow(conv.Messages, chatHistoryWindow)

	messages := make([]ai.Message, 0, len(window))
	for _, m := range window {
		messages = append(messages, ai.Message{Role: m.Role, Content: m.Content})
	}
	if len(messages) == 0 {
		messages = append(messages, ai.Message{Role: ai.RoleUser, Content: "Hi"})
	}

	out, err := s.provider.Complete(ctx, ai.Request{
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
		System:      chatSystemPrompt(pref),
		Messages:    messages,
	})
	if err != nil {
		log.Printf("trip: chat reply: %v", err)
		return fallbackReply
	}
	if strings.TrimSpace(out) == "" {
		return fallbackReply
	}
	return out
}
