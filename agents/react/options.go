/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package react

import (
	"errors"
	"fmt"
	"time"

	"github.com/xleven/ai-hackathon-judge/agents/metrics"
	"github.com/xleven/ai-hackathon-judge/agents/retry"
)

// Option is a functional option for configuring the executor
type Option func(*executor) error

// WithMaxIterations bounds the number of model calls in one run.
func WithMaxIterations(n int) Option {
	return func(e *executor) error {
		if n <= 0 {
			return fmt.Errorf("max iterations must be positive, got %d", n)
		}
		e.maxIterations = n
		return nil
	}
}

// WithMaxDuration bounds the wall-clock time of one run. Zero disables the
// bound.
func WithMaxDuration(d time.Duration) Option {
	return func(e *executor) error {
		if d < 0 {
			return fmt.Errorf("max duration cannot be negative, got %v", d)
		}
		e.maxDuration = d
		return nil
	}
}

// WithStrictParsing makes unparsable model output end the run with
// ErrUnparsableResponse instead of being fed back as an observation.
func WithStrictParsing() Option {
	return func(e *executor) error {
		e.strict = true
		return nil
	}
}

// WithRetryConfig retries transient model errors. By default model errors
// end the run immediately.
func WithRetryConfig(cfg retry.Config) Option {
	return func(e *executor) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid retry config: %w", err)
		}
		e.retryConfig = cfg
		return nil
	}
}

// WithMetrics overrides the metrics recorder.
func WithMetrics(m *metrics.GenAI) Option {
	return func(e *executor) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		e.genaiMetrics = m
		return nil
	}
}
