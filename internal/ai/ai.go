package ai

import "context"

// Role values for chat messages.
const (
	RoleSystem = "system"
	RoleUser   = "user"
	RoleModel  = "model"
)

// Message is one entry in an LLM-ready conversation.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Generator abstracts the LLM backend. Generate covers single-prompt calls
// (answer evaluation); Chat covers multi-turn calls built by the conversation
// manager.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, messages []Message) (string, error)
}
