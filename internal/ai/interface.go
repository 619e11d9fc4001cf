// README: Provider contract for chat-style LLM completions.
package ai

import (
	"context"
)

// Role identifies the author of a chat message. The set is deliberately
// closed so conversation rendering can be exhaustive; unknown roles are
// rejected at the edges instead of being passed through.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ValidRole reports whether r is one of the known chat roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is one role-tagged entry of a chat exchange.
type Message struct {
	Role    Role
	Content string
}

// Request describes a single completion call.
type Request struct {
	// Model names the provider model to use; empty selects the provider default.
	Model string

	Temperature float32

	// MaxTokens caps the response length when > 0.
	MaxTokens int32

	// JSONOutput asks the model for a strictly-JSON payload.
	JSONOutput bool

	// System is the system instruction; empty means none.
	System string

	// Messages is the ordered history. The final entry is the live turn.
	Messages []Message
}

// Provider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.)
// behind the trip service without touching the callers.
type Provider interface {
	// Complete issues exactly one completion request and returns the raw text
	// payload. An empty model payload comes back as ("", nil); transport and
	// API failures come back as errors. Complete never retries.
	Complete(ctx context.Context, req Request) (string, error)
}
