/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/xleven/ai-hackathon-judge/agents/agenttrace"

// ToolCall is one tool invocation within a trace.
type ToolCall struct {
	Name      string    `json:"name"`
	Input     string    `json:"input"`
	Output    string    `json:"output,omitempty"`
	Error     error     `json:"error,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	trace *Trace
	span  oteltrace.Span
}

// Trace is a complete agent run from the first prompt to the final answer.
type Trace struct {
	ID          string           `json:"id"`
	InputPrompt string           `json:"input_prompt"`
	ExecContext ExecutionContext `json:"exec_context"`
	ToolCalls   []*ToolCall      `json:"tool_calls"`
	Iterations  int              `json:"iterations"`
	Result      string           `json:"result"`
	Error       error            `json:"error,omitempty"`
	StartTime   time.Time        `json:"start_time"`
	EndTime     time.Time        `json:"end_time"`

	tracer Tracer
	mu     sync.Mutex
	ctx    context.Context
	span   oteltrace.Span
}

func tracer() oteltrace.Tracer {
	return otel.Tracer(instrumentationName, oteltrace.WithInstrumentationVersion("1.0.0"))
}

func newTrace(ctx context.Context, t Tracer, prompt string) *Trace {
	execCtx := GetExecutionContext(ctx)

	attrs := []attribute.KeyValue{attribute.Int("agent.prompt_length", len(prompt))}
	if execCtx.Repository != "" {
		attrs = append(attrs, attribute.String("repository", execCtx.Repository))
	}
	if execCtx.Model != "" {
		attrs = append(attrs, attribute.String("model", execCtx.Model))
	}
	ctx, span := tracer().Start(ctx, "agent.run", oteltrace.WithAttributes(attrs...))

	return &Trace{
		ID:          generateTraceID(),
		InputPrompt: prompt,
		ExecContext: execCtx,
		ToolCalls:   []*ToolCall{},
		StartTime:   time.Now(),
		tracer:      t,
		ctx:         ctx,
		span:        span,
	}
}

// StartToolCall opens a tool call; it is added to the trace on Complete.
func (t *Trace) StartToolCall(name, input string) *ToolCall {
	_, span := tracer().Start(t.ctx, "agent.tool_call", oteltrace.WithAttributes(
		attribute.String("tool.name", name),
	))
	return &ToolCall{
		Name:      name,
		Input:     input,
		StartTime: time.Now(),
		trace:     t,
		span:      span,
	}
}

// BadToolCall records a call to a tool that is not registered.
func (t *Trace) BadToolCall(name, input string, err error) {
	tc := t.StartToolCall(name, input)
	tc.Complete("", err)
}

// RecordIteration counts one model round-trip.
func (t *Trace) RecordIteration() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Iterations++
}

// RecordTokenUsage adds token usage to the run span.
func (t *Trace) RecordTokenUsage(model string, inputTokens, outputTokens int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.span == nil {
		return
	}
	t.span.AddEvent("model.completion", oteltrace.WithAttributes(
		attribute.String("model", model),
		attribute.Int64("tokens.input", inputTokens),
		attribute.Int64("tokens.output", outputTokens),
	))
}

// Complete closes the tool call and appends it to its trace.
func (tc *ToolCall) Complete(output string, err error) {
	tc.Output = output
	tc.Error = err
	tc.EndTime = time.Now()
	endSpan(tc.span, err)

	tc.trace.mu.Lock()
	defer tc.trace.mu.Unlock()
	tc.trace.ToolCalls = append(tc.trace.ToolCalls, tc)
}

// Duration returns how long the tool call took.
func (tc *ToolCall) Duration() time.Duration {
	if tc.EndTime.IsZero() {
		return time.Since(tc.StartTime)
	}
	return tc.EndTime.Sub(tc.StartTime)
}

// Complete closes the trace and hands it to the tracer.
func (t *Trace) Complete(result string, err error) {
	t.mu.Lock()
	t.Result = result
	t.Error = err
	t.EndTime = time.Now()
	if t.span != nil {
		t.span.SetAttributes(attribute.Int("agent.iterations", t.Iterations))
	}
	t.mu.Unlock()

	endSpan(t.span, err)
	t.tracer.RecordTrace(t)
}

func endSpan(span oteltrace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Duration returns the run's duration so far.
func (t *Trace) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}
	return t.EndTime.Sub(t.StartTime)
}

// String renders a human readable summary of the trace.
func (t *Trace) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Trace %s ===\n", t.ID)
	if t.ExecContext.Repository != "" {
		fmt.Fprintf(&sb, "Repository: %s\n", t.ExecContext.Repository)
	}
	fmt.Fprintf(&sb, "Iterations: %d\n", t.Iterations)

	if len(t.ToolCalls) == 0 {
		sb.WriteString("No tool calls\n")
	}
	for i, tc := range t.ToolCalls {
		fmt.Fprintf(&sb, "  [%d] %s(%q)\n", i+1, tc.Name, clip(tc.Input, 200))
		if tc.Error != nil {
			fmt.Fprintf(&sb, "      Error: %v\n", tc.Error)
		} else {
			fmt.Fprintf(&sb, "      Output: %s\n", clip(tc.Output, 200))
		}
	}

	if t.Error != nil {
		fmt.Fprintf(&sb, "Error: %v\n", t.Error)
	} else {
		fmt.Fprintf(&sb, "Result: %s\n", clip(t.Result, 500))
	}
	return sb.String()
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// generateTraceID returns YYYYMMDD-HHMMSS-<random hex>.
func generateTraceID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return time.Now().Format("20060102-150405.000000")
	}
	return fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), hex.EncodeToString(b))
}
