package summary

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Completion defaults.
const (
	DefaultModel       = openai.GPT4
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
)

// Completer issues one chat completion.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIConfig configures an OpenAI-compatible chat completion endpoint.
type OpenAIConfig struct {
	BaseURL     string // empty = api.openai.com
	Model       string
	MaxTokens   int
	Temperature float32
	HTTPClient  *http.Client
}

// OpenAICompleter is a Completer backed by go-openai.
type OpenAICompleter struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAI creates a completer authenticated with apiKey.
func NewOpenAI(apiKey string, oc OpenAIConfig) *OpenAICompleter {
	conf := openai.DefaultConfig(apiKey)
	if oc.BaseURL != "" {
		conf.BaseURL = oc.BaseURL
	}
	if oc.HTTPClient != nil {
		conf.HTTPClient = oc.HTTPClient
	}
	if oc.Model == "" {
		oc.Model = DefaultModel
	}
	if oc.MaxTokens <= 0 {
		oc.MaxTokens = DefaultMaxTokens
	}
	return &OpenAICompleter{
		client:      openai.NewClientWithConfig(conf),
		model:       oc.Model,
		maxTokens:   oc.MaxTokens,
		temperature: oc.Temperature,
	}
}

// Complete sends one system+user exchange and returns the first choice.
func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", openAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion has no choices", ErrTransport)
	}
	return resp.Choices[0].Message.Content, nil
}

// openAIError maps go-openai failures onto the summarization taxonomy by HTTP status.
func openAIError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
