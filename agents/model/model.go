/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package model defines the provider-agnostic text completion interface used
// by the reasoning loop.
//
// A Model takes a fully assembled prompt and returns the raw completion text.
// Providers live in the openaimodel, claudemodel and geminimodel subpackages;
// tests use Func to script responses.
package model

import (
	"context"
	"errors"
)

// Completion is a single model response.
type Completion struct {
	Text         string
	InputTokens  int64
	OutputTokens int64
}

// Model produces a completion for a prompt.
type Model interface {
	// Name identifies the underlying model, e.g. "gpt-4".
	Name() string
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// Retryable is implemented by models that can classify transient errors
// (rate limits, overload) returned from Complete.
type Retryable interface {
	IsRetryable(err error) bool
}

// ErrEmptyCompletion is returned by providers when the response carries no
// candidate at all. A candidate with empty text is a Completion with an
// empty Text, not an error.
var ErrEmptyCompletion = errors.New("model returned no text")

// Func adapts an ordinary function into a Model.
type Func func(ctx context.Context, prompt string) (Completion, error)

var _ Model = Func(nil)

// Name implements Model.
func (Func) Name() string { return "func" }

// Complete implements Model.
func (f Func) Complete(ctx context.Context, prompt string) (Completion, error) {
	return f(ctx, prompt)
}

// Script returns a Model that replies with each response in turn and then
// keeps repeating the last one. It ignores the prompt.
func Script(responses ...string) Model {
	var i int
	return Func(func(ctx context.Context, _ string) (Completion, error) {
		if err := ctx.Err(); err != nil {
			return Completion{}, err
		}
		if len(responses) == 0 {
			return Completion{}, ErrEmptyCompletion
		}
		r := responses[min(i, len(responses)-1)]
		i++
		return Completion{Text: r}, nil
	})
}

// IsRetryable reports whether m classifies err as transient.
func IsRetryable(m Model, err error) bool {
	if r, ok := m.(Retryable); ok {
		return r.IsRetryable(err)
	}
	return false
}
