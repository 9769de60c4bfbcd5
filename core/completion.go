package core

import "context"

// CompletionService is any service that can complete a text prompt.
// It is an optional collaborator: callers must always be prepared to fall
// back to local heuristics when it is absent or its response is unusable.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
