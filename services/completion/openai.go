package completionsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/mkabeya/ratiba/core"
)

type (
	// OpenAIService talks to any OpenAI-compatible chat completions endpoint.
	OpenAIService struct {
		baseURL string
		apiKey  string
		model   string
		client  *http.Client
	}

	chatRequest struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}

	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatResponse struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
)

var _ core.CompletionService = (*OpenAIService)(nil)

func NewOpenAIService(conf *core.Config) *OpenAIService {
	return &OpenAIService{
		baseURL: strings.TrimSuffix(conf.Completion.BaseURL, "/"),
		apiKey:  conf.Completion.APIKey,
		model:   conf.Completion.Model,
		client:  &http.Client{Timeout: conf.Completion.Timeout},
	}
}

func (svc *OpenAIService) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    svc.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+svc.apiKey)

	res, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling completion endpoint")
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading completion response")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return "", errors.Errorf("completion endpoint returned %d: %s", res.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.Wrap(err, "decoding completion response")
	}
	if parsed.Error != nil {
		return "", errors.Errorf("completion error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// String identifies the backing model in logs.
func (svc *OpenAIService) String() string {
	return fmt.Sprintf("openai-compatible(%s)", svc.model)
}
