package ai

import "context"

// Message is one conversational turn sent to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries everything a provider needs for one completion. The
// system prompt always travels in its own field; providers decide how their
// API wants it delivered (dedicated field vs. leading system turn).
type ChatRequest struct {
	Model     string
	System    string
	MaxTokens int
	Messages  []Message
}

// ChatResult is a complete, non-streamed response.
type ChatResult struct {
	Content      string
	Model        string
	FinishReason string
}

type Provider interface {
	Name() string
	Chat(ctx context.Context, req ChatRequest) (*ChatResult, error)
}

// StreamProvider is an optional interface. Providers may implement streaming chat.
// Both channels are closed by the provider when the stream ends; at most one
// error is ever sent. Cancelling ctx stops the upstream read.
type StreamProvider interface {
	StreamChat(ctx context.Context, req ChatRequest) (<-chan string, <-chan error)
}
