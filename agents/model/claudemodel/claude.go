/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudemodel implements model.Model on the Anthropic messages API.
package claudemodel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/xleven/ai-hackathon-judge/agents/model"
)

// Option configures the Claude model.
type Option func(*Model) error

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(m *Model) error {
		if t < 0 || t > 1 {
			return fmt.Errorf("temperature must be between 0 and 1, got %v", t)
		}
		m.temperature = t
		return nil
	}
}

// WithMaxTokens bounds the length of each completion.
func WithMaxTokens(n int64) Option {
	return func(m *Model) error {
		if n <= 0 {
			return errors.New("max tokens must be positive")
		}
		m.maxTokens = n
		return nil
	}
}

// WithRequestOptions passes options through to the underlying client.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(m *Model) error {
		m.requestOpts = append(m.requestOpts, opts...)
		return nil
	}
}

// Model is a Claude messages model.
type Model struct {
	client      anthropic.Client
	name        string
	temperature float64
	maxTokens   int64
	requestOpts []option.RequestOption
}

var (
	_ model.Model     = (*Model)(nil)
	_ model.Retryable = (*Model)(nil)
)

// New creates a Model for the named Claude model.
func New(apiKey, name string, opts ...Option) (*Model, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if name == "" {
		return nil, errors.New("model name is required")
	}
	m := &Model{name: name, temperature: 0.1, maxTokens: 4096}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	m.client = anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, m.requestOpts...)...)
	return m, nil
}

// Name implements model.Model.
func (m *Model) Name() string { return m.name }

// Complete implements model.Model.
func (m *Model) Complete(ctx context.Context, prompt string) (model.Completion, error) {
	message, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(m.name),
		MaxTokens:   m.maxTokens,
		Temperature: anthropic.Float(m.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return model.Completion{}, fmt.Errorf("claude messages: %w", err)
	}

	var text strings.Builder
	for _, content := range message.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
		}
	}
	return model.Completion{
		Text:         text.String(),
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}, nil
}

// IsRetryable checks for rate limit, overloaded, and transient server errors.
func (m *Model) IsRetryable(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 503, 504, 529:
			return true
		}
	}
	return false
}
