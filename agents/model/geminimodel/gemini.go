/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package geminimodel implements model.Model on the Gemini API.
package geminimodel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/xleven/ai-hackathon-judge/agents/model"
)

// Option configures the Gemini model.
type Option func(*Model) error

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(m *Model) error {
		if t < 0 || t > 2 {
			return fmt.Errorf("temperature must be between 0 and 2, got %v", t)
		}
		m.temperature = t
		return nil
	}
}

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(url string) Option {
	return func(m *Model) error {
		m.baseURL = url
		return nil
	}
}

// Model is a Gemini model served through the Gemini API backend.
type Model struct {
	client      *genai.Client
	name        string
	temperature float32
	baseURL     string
}

var (
	_ model.Model     = (*Model)(nil)
	_ model.Retryable = (*Model)(nil)
)

// New creates a Model for the named Gemini model.
func New(ctx context.Context, apiKey, name string, opts ...Option) (*Model, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if name == "" {
		return nil, errors.New("model name is required")
	}
	m := &Model{name: name, temperature: 0.1}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if m.baseURL != "" {
		cfg.HTTPOptions.BaseURL = m.baseURL
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	m.client = client
	return m, nil
}

// Name implements model.Model.
func (m *Model) Name() string { return m.name }

// Complete implements model.Model.
func (m *Model) Complete(ctx context.Context, prompt string) (model.Completion, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.name, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: ptr(m.temperature),
	})
	if err != nil {
		return model.Completion{}, fmt.Errorf("gemini generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return model.Completion{}, model.ErrEmptyCompletion
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			text.WriteString(part.Text)
		}
	}
	c := model.Completion{Text: text.String()}
	if resp.UsageMetadata != nil {
		c.InputTokens = int64(resp.UsageMetadata.PromptTokenCount)
		c.OutputTokens = int64(resp.UsageMetadata.CandidatesTokenCount)
	}
	return c, nil
}

// IsRetryable checks for rate limit, quota exhaustion, and transient server errors.
func (m *Model) IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	for _, s := range []string{"Resource exhausted", "RESOURCE_EXHAUSTED", "429", "503", "rate limit", "Overloaded", "quota exceeded", "Internal error"} {
		if strings.Contains(errStr, s) {
			return true
		}
	}
	return false
}

func ptr[T any](v T) *T {
	return &v
}
