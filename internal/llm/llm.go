// Package llm defines the completion client boundary. The analysis service
// depends on this interface only; concrete providers live in subpackages.
package llm

import "context"

// CompletionRequest is a single-turn completion: one system prompt, one user
// message. MaxTokens caps the response length.
type CompletionRequest struct {
	System      string
	UserMessage string
	MaxTokens   int
}

// Completion holds the text of the first content block returned by the model.
type Completion struct {
	Text string
}

// Client produces completions. Implementations make exactly one attempt per
// call; retry policy belongs to callers, and today there is none.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}
