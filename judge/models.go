/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/xleven/ai-hackathon-judge/agents/model"
	"github.com/xleven/ai-hackathon-judge/agents/model/claudemodel"
	"github.com/xleven/ai-hackathon-judge/agents/model/geminimodel"
	"github.com/xleven/ai-hackathon-judge/agents/model/openaimodel"
)

// Provider names a model vendor.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// ModelConfig selects and configures a model. APIKey is handed straight to
// the provider client and never logged.
type ModelConfig struct {
	Name        string
	Temperature float64
	APIKey      string
}

// ProviderFor infers the vendor from a model name.
func ProviderFor(name string) (Provider, error) {
	modelLower := strings.ToLower(name)
	switch {
	case modelLower == "", strings.HasPrefix(modelLower, "gpt-"), strings.HasPrefix(modelLower, "o1"),
		strings.HasPrefix(modelLower, "o3"), strings.HasPrefix(modelLower, "o4"):
		return ProviderOpenAI, nil
	case strings.HasPrefix(modelLower, "claude-"):
		return ProviderAnthropic, nil
	case strings.HasPrefix(modelLower, "gemini-"):
		return ProviderGemini, nil
	}
	return "", fmt.Errorf("cannot infer provider for model %q (expected gpt-*, o1*, o3*, o4*, claude-* or gemini-*)", name)
}

// NewModel builds the model named in cfg.
func NewModel(ctx context.Context, cfg ModelConfig) (model.Model, error) {
	provider, err := ProviderFor(cfg.Name)
	if err != nil {
		return nil, err
	}
	switch provider {
	case ProviderAnthropic:
		return claudemodel.New(cfg.APIKey, cfg.Name, claudemodel.WithTemperature(cfg.Temperature))
	case ProviderGemini:
		return geminimodel.New(ctx, cfg.APIKey, cfg.Name, geminimodel.WithTemperature(float32(cfg.Temperature)))
	default:
		return openaimodel.New(cfg.APIKey, cfg.Name, openaimodel.WithTemperature(cfg.Temperature))
	}
}
