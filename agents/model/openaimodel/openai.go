/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaimodel implements model.Model on the OpenAI chat completions API.
package openaimodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/xleven/ai-hackathon-judge/agents/model"
)

// DefaultModel matches the model the judge shipped with.
const DefaultModel = "gpt-3.5-turbo"

// Option configures the OpenAI model.
type Option func(*Model) error

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(m *Model) error {
		if t < 0 || t > 2 {
			return fmt.Errorf("temperature must be between 0 and 2, got %v", t)
		}
		m.temperature = t
		return nil
	}
}

// WithRequestOptions passes options through to the underlying client, e.g. a
// base URL for a compatible endpoint.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(m *Model) error {
		m.requestOpts = append(m.requestOpts, opts...)
		return nil
	}
}

// Model is a chat completion model.
type Model struct {
	client      openai.Client
	name        string
	temperature float64
	requestOpts []option.RequestOption
}

var (
	_ model.Model     = (*Model)(nil)
	_ model.Retryable = (*Model)(nil)
)

// New creates a Model for the named chat model. The API key is only handed
// to the client.
func New(apiKey, name string, opts ...Option) (*Model, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if name == "" {
		name = DefaultModel
	}
	m := &Model{name: name, temperature: 0.1}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	// agents/retry owns retries; the SDK's own retries are off unless the
	// caller's request options turn them back on.
	m.client = openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, m.requestOpts...)...)
	return m, nil
}

// Name implements model.Model.
func (m *Model) Name() string { return m.name }

// Complete implements model.Model.
func (m *Model) Complete(ctx context.Context, prompt string) (model.Completion, error) {
	resp, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(m.name),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(m.temperature),
	})
	if err != nil {
		return model.Completion{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Completion{}, model.ErrEmptyCompletion
	}
	return model.Completion{
		Text:         resp.Choices[0].Message.Content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

// IsRetryable reports rate limits and transient server errors.
func (m *Model) IsRetryable(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		}
	}
	return false
}
