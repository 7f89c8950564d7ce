package services

import "context"

// Message is one chat message sent to the generation gateway.
type Message struct {
	Role    string
	Content string
}

// Gateway is the opaque text-generation capability used for prompt
// enhancement and code generation. Implementations must return an error
// (wrapping domain.ErrGeneration) for upstream failures; a nil error with
// blank content is a distinct condition the caller decides how to treat.
type Gateway interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}
