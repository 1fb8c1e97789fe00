package llm

import "context"

// Oracle is the narrow capability interface for text completion. The response
// carries no guaranteed structure: callers store or scan it verbatim and must
// treat an empty string as a valid completion.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
