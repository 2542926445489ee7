// Package extraction holds the pieces shared by the five conversation
// extraction tasks: the model completion interface and the defensive
// response parsing helpers.
package extraction

import "context"

// SystemInstruction is the system message sent with every extraction call.
const SystemInstruction = "You are an expert at analyzing conversations and extracting structured planning information for creating digital workspace templates."

// Completer is the injected model completion capability. Implementations own
// any retry or backoff behavior; the extraction tasks perform none and treat
// every failure identically.
type Completer interface {
	Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface. Used by
// tests to stub model replies.
type CompleterFunc func(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, system, prompt string, maxTokens int, temperature float64) (string, error) {
	return f(ctx, system, prompt, maxTokens, temperature)
}
