/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

// Tracer creates traces and receives them once they complete.
type Tracer interface {
	NewTrace(ctx context.Context, prompt string) *Trace
	RecordTrace(trace *Trace)
}

type tracerKey struct{}

// WithTracer returns a context carrying tracer.
func WithTracer(ctx context.Context, tracer Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, tracer)
}

// TracerFromContext returns the context's tracer or a default logging tracer.
func TracerFromContext(ctx context.Context) Tracer {
	if tracer, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return tracer
	}
	return NewDefaultTracer(ctx)
}

// StartTrace starts a trace with the context's tracer.
func StartTrace(ctx context.Context, prompt string) *Trace {
	return TracerFromContext(ctx).NewTrace(ctx, prompt)
}

// Callback receives completed traces.
type Callback func(*Trace)

type byCodeTracer struct {
	callbacks []Callback
}

// ByCode returns a Tracer that hands every completed trace to callbacks.
// Callbacks run concurrently and RecordTrace waits for all of them.
func ByCode(callbacks ...Callback) Tracer {
	return &byCodeTracer{callbacks: callbacks}
}

func (t *byCodeTracer) NewTrace(ctx context.Context, prompt string) *Trace {
	return newTrace(ctx, t, prompt)
}

func (t *byCodeTracer) RecordTrace(trace *Trace) {
	var g errgroup.Group
	for _, cb := range t.callbacks {
		if cb == nil {
			continue
		}
		g.Go(func() error {
			cb(trace)
			return nil
		})
	}
	_ = g.Wait()
}

// NewDefaultTracer returns a tracer that logs completed traces at debug level.
func NewDefaultTracer(ctx context.Context) Tracer {
	logger := clog.FromContext(ctx)
	return ByCode(func(trace *Trace) {
		logger.With(
			"trace_id", trace.ID,
			"duration_ms", trace.Duration().Milliseconds(),
			"iterations", trace.Iterations,
			"tool_calls", len(trace.ToolCalls),
		).Debug("Judging trace completed", "trace", trace.String())
	})
}
