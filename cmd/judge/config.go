/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"github.com/xleven/ai-hackathon-judge/judge"
)

// envConfig is read from the process environment. Flags override it.
type envConfig struct {
	CacheDir      string `env:"JUDGE_CACHE_DIR,default=repos"`
	Branch        string `env:"JUDGE_BRANCH,default=main"`
	RepoSource    string `env:"JUDGE_REPO_SOURCE,default=git"`
	MaxIterations int    `env:"JUDGE_MAX_ITERATIONS,default=15"`
	Retries       int    `env:"JUDGE_RETRIES,default=0"`
	Model         string `env:"JUDGE_MODEL,default=gpt-3.5-turbo"`

	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GitHubToken     string `env:"GITHUB_TOKEN"`
}

// apiKeyFor picks the explicit key or the provider's environment variable.
func (c envConfig) apiKeyFor(provider judge.Provider, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	var key, name string
	switch provider {
	case judge.ProviderAnthropic:
		key, name = c.AnthropicAPIKey, "ANTHROPIC_API_KEY"
	case judge.ProviderGemini:
		key, name = c.GeminiAPIKey, "GEMINI_API_KEY"
	default:
		key, name = c.OpenAIAPIKey, "OPENAI_API_KEY"
	}
	if key == "" {
		return "", fmt.Errorf("no API key for %s: pass --api-key or set %s", provider, name)
	}
	return key, nil
}
