/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xleven/ai-hackathon-judge/agents/agenttrace"
	"github.com/xleven/ai-hackathon-judge/agents/metrics"
	"github.com/xleven/ai-hackathon-judge/agents/model"
	"github.com/xleven/ai-hackathon-judge/agents/react"
	"github.com/xleven/ai-hackathon-judge/agents/retry"
	"github.com/xleven/ai-hackathon-judge/agents/toolcall"
	"github.com/xleven/ai-hackathon-judge/repository/snapshot"
)

// Verdict is the outcome of judging one repository.
type Verdict struct {
	Repo snapshot.RepoID
	// Text is the model's final answer, unparsed.
	Text string
	// Steps is the reasoning transcript.
	Steps      []react.Entry
	Iterations int
	ToolCalls  int
}

// Option configures a Judge.
type Option func(*config) error

type config struct {
	budget        int
	branch        string
	maxIterations int
	maxDuration   time.Duration
	strict        bool
	retryConfig   *retry.Config
}

// WithBudget sets how many characters each tool may return. Zero or less
// disables truncation.
func WithBudget(n int) Option {
	return func(c *config) error {
		c.budget = n
		return nil
	}
}

// WithBranch judges branch instead of the provider's default.
func WithBranch(branch string) Option {
	return func(c *config) error {
		c.branch = branch
		return nil
	}
}

// WithMaxIterations bounds model calls per repository.
func WithMaxIterations(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("max iterations must be positive, got %d", n)
		}
		c.maxIterations = n
		return nil
	}
}

// WithTimeout bounds the wall-clock time spent on one repository.
func WithTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return fmt.Errorf("timeout cannot be negative, got %v", d)
		}
		c.maxDuration = d
		return nil
	}
}

// WithStrictParsing fails on model output that is neither an action nor a
// final answer.
func WithStrictParsing() Option {
	return func(c *config) error {
		c.strict = true
		return nil
	}
}

// WithRetry retries rate-limited model calls.
func WithRetry(cfg retry.Config) Option {
	return func(c *config) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		c.retryConfig = &cfg
		return nil
	}
}

// Judge scores repositories for a hackathon.
type Judge struct {
	model  model.Model
	loader Loader
	branch string
	exec   react.Interface
}

// New creates a Judge that asks m and reads repositories through loader.
func New(m model.Model, loader Loader, opts ...Option) (*Judge, error) {
	if m == nil {
		return nil, errors.New("model cannot be nil")
	}
	if loader == nil {
		return nil, errors.New("loader cannot be nil")
	}
	cfg := &config{budget: toolcall.DefaultBudget, maxIterations: react.DefaultMaxIterations}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	rt := &repoTools{loader: loader, branch: cfg.branch, budget: cfg.budget}
	tools, err := toolcall.NewRegistry(rt.tools()...)
	if err != nil {
		return nil, fmt.Errorf("building tools: %w", err)
	}

	genaiMetrics := metrics.NewGenAI("hackathon.judge")
	genaiMetrics.SetAttributeEnricher(func(ctx context.Context, base []attribute.KeyValue) []attribute.KeyValue {
		return agenttrace.GetExecutionContext(ctx).EnrichAttributes(base)
	})

	reactOpts := []react.Option{
		react.WithMaxIterations(cfg.maxIterations),
		react.WithMaxDuration(cfg.maxDuration),
		react.WithMetrics(genaiMetrics),
	}
	if cfg.strict {
		reactOpts = append(reactOpts, react.WithStrictParsing())
	}
	if cfg.retryConfig != nil {
		reactOpts = append(reactOpts, react.WithRetryConfig(*cfg.retryConfig))
	}
	exec, err := react.New(m, judgePrompt, tools, reactOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating reasoning loop: %w", err)
	}

	return &Judge{model: m, loader: loader, branch: cfg.branch, exec: exec}, nil
}

// Judge scores repo ("owner/name") against hackathon. The repository is
// loaded before the model is first called, so an unknown repository fails
// with snapshot.ErrRepositoryNotFound without spending tokens.
//
// When the reasoning loop fails the returned Verdict is still non-nil and
// holds the partial transcript.
func (j *Judge) Judge(ctx context.Context, hackathon Hackathon, repo string) (*Verdict, error) {
	if err := hackathon.Validate(); err != nil {
		return nil, err
	}
	id, err := snapshot.ParseRepoID(repo)
	if err != nil {
		return nil, err
	}

	ctx = agenttrace.WithExecutionContext(ctx, agenttrace.ExecutionContext{
		Repository: id.String(),
		Model:      j.model.Name(),
	})
	log := clog.FromContext(ctx).With("repository", id.String())

	if _, err := j.loader.Load(ctx, id, j.branch); err != nil {
		return nil, err
	}

	log.Info("Judging repository")
	result, err := j.exec.Run(ctx, &request{hackathon: hackathon, repos: id.String()})
	if result == nil {
		return nil, err
	}
	v := &Verdict{
		Repo:       id,
		Text:       result.Answer,
		Steps:      result.Scratchpad.Entries(),
		Iterations: result.Iterations,
		ToolCalls:  result.ToolCalls,
	}
	if err != nil {
		log.With("iterations", v.Iterations).With("error", err.Error()).Warn("Judging failed")
		return v, err
	}
	return v, nil
}
