package completionsvc

import (
	"context"

	"github.com/mkabeya/ratiba/core"
)

// DummyService returns canned responses; used in tests and in environments
// without a completion endpoint configured.
type DummyService struct {
	Response string
	Err      error

	// Prompts records every prompt received, in order.
	Prompts []string
}

var _ core.CompletionService = (*DummyService)(nil)

func NewDummyService(response string) *DummyService {
	return &DummyService{Response: response}
}

func (svc *DummyService) Complete(_ context.Context, prompt string) (string, error) {
	svc.Prompts = append(svc.Prompts, prompt)
	if svc.Err != nil {
		return "", svc.Err
	}
	return svc.Response, nil
}
