package domain

import "context"

// Message is a single turn of a chat-style completion request.
type Message struct {
	Role    string
	Content string
}

// LLMClient sends chat prompts to the completion service and returns the
// raw assistant text. Implementations make exactly one attempt per call.
type LLMClient interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Version() string
}
