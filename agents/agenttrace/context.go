/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// ExecutionContext describes the judging session a run belongs to.
type ExecutionContext struct {
	Repository string `json:"repository,omitempty"` // owner/name under judgment
	Model      string `json:"model,omitempty"`
}

// EnrichAttributes appends the bounded execution attributes to base.
func (e ExecutionContext) EnrichAttributes(base []attribute.KeyValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(base), len(base)+1)
	copy(attrs, base)
	if e.Repository != "" {
		attrs = append(attrs, attribute.String("repository", e.Repository))
	}
	return attrs
}

type executionContextKey struct{}

// WithExecutionContext attaches execCtx to ctx.
func WithExecutionContext(ctx context.Context, execCtx ExecutionContext) context.Context {
	return context.WithValue(ctx, executionContextKey{}, execCtx)
}

// GetExecutionContext returns the execution context attached to ctx, if any.
func GetExecutionContext(ctx context.Context) ExecutionContext {
	if execCtx, ok := ctx.Value(executionContextKey{}).(ExecutionContext); ok {
		return execCtx
	}
	return ExecutionContext{}
}
