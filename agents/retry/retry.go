/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry retries transient model-provider failures with exponential
// backoff and jitter.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config controls retry behavior. The zero value never retries.
type Config struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries int
	// BaseBackoff is doubled on every attempt, capped at MaxBackoff.
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	// MaxJitter bounds the random delay added to each backoff.
	MaxJitter time.Duration
}

// Validate rejects negative values.
func (c Config) Validate() error {
	switch {
	case c.MaxRetries < 0:
		return errors.New("max retries cannot be negative")
	case c.BaseBackoff < 0:
		return errors.New("base backoff cannot be negative")
	case c.MaxBackoff < 0:
		return errors.New("max backoff cannot be negative")
	case c.MaxJitter < 0:
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// None returns a configuration that makes exactly one attempt.
func None() Config {
	return Config{}
}

// Default returns a configuration suited to provider rate limits.
func Default() Config {
	return Config{
		MaxRetries:  5,
		BaseBackoff: time.Second,
		MaxBackoff:  60 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

// Attempts returns Default with n retries, or None when n is not positive.
func Attempts(n int) Config {
	if n <= 0 {
		return None()
	}
	c := Default()
	c.MaxRetries = n
	return c
}

// ErrExhausted wraps the last error once every retry has failed.
var ErrExhausted = errors.New("retries exhausted")

// Backoff is the delay before retry number attempt (zero based), without
// jitter.
func (c Config) Backoff(attempt int) time.Duration {
	if c.BaseBackoff <= 0 {
		return 0
	}
	d := c.BaseBackoff << attempt
	if d <= 0 || (c.MaxBackoff > 0 && d > c.MaxBackoff) {
		return c.MaxBackoff
	}
	return d
}

func (c Config) jitter() time.Duration {
	if c.MaxJitter <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(c.MaxJitter)))
	if err != nil {
		return 0
	}
	return time.Duration(n.Int64())
}

// Do calls fn until it succeeds or returns an error isRetryable rejects.
// It gives up with ErrExhausted after cfg.MaxRetries retries, and with the
// context's cause when ctx ends during a backoff.
func Do[T any](ctx context.Context, cfg Config, operation string, isRetryable func(error) bool, fn func() (T, error)) (T, error) {
	log := clog.FromContext(ctx).With("operation", operation)
	for attempt := 0; ; attempt++ {
		result, err := fn()
		if err == nil || !isRetryable(err) {
			return result, err
		}
		if attempt == cfg.MaxRetries {
			if attempt == 0 {
				return result, err
			}
			return result, fmt.Errorf("%w: %s after %d retries: %w", ErrExhausted, operation, attempt, err)
		}

		wait := cfg.Backoff(attempt) + cfg.jitter()
		log.With("attempt", attempt+1).
			With("max_retries", cfg.MaxRetries).
			With("backoff", wait).
			With("error", err.Error()).
			Warn("Transient model error, retrying")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, context.Cause(ctx)
		case <-timer.C:
		}
	}
}
