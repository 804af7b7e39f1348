/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics exposes OpenTelemetry counters for agent runs.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// AttributeEnricher adds contextual attributes before a metric is recorded.
type AttributeEnricher func(ctx context.Context, base []attribute.KeyValue) []attribute.KeyValue

// GenAI records token usage, tool calls, loop iterations and unparsable model
// responses. A counter that cannot be created degrades to a no-op.
type GenAI struct {
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	toolCalls        metric.Int64Counter
	iterations       metric.Int64Counter
	parseFailures    metric.Int64Counter
	enricher         AttributeEnricher
}

// NewGenAI creates the counters on the named meter.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))
	counter := func(name, desc, unit string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil {
			slog.Warn("Failed to create counter, metric will be disabled", "error", err, "meter", meterName, "counter", name)
			return noop.Int64Counter{}
		}
		return c
	}
	return &GenAI{
		promptTokens:     counter("genai.token.prompt", "The number of prompt tokens used", "{tokens}"),
		completionTokens: counter("genai.token.completion", "The number of completion tokens used", "{tokens}"),
		toolCalls:        counter("genai.tool.calls", "The number of tool calls made during execution", "{calls}"),
		iterations:       counter("genai.agent.iterations", "The number of model round-trips in the reasoning loop", "{iterations}"),
		parseFailures:    counter("genai.agent.parse_failures", "The number of model responses that matched no action grammar", "{responses}"),
	}
}

// SetAttributeEnricher installs enricher for all subsequent recordings.
func (m *GenAI) SetAttributeEnricher(enricher AttributeEnricher) {
	m.enricher = enricher
}

func (m *GenAI) attrs(ctx context.Context, base ...attribute.KeyValue) metric.AddOption {
	if m.enricher != nil {
		base = m.enricher(ctx, base)
	}
	return metric.WithAttributes(base...)
}

// RecordTokens records prompt and completion tokens for model.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	opt := m.attrs(ctx, attribute.String("model", model))
	m.promptTokens.Add(ctx, promptTokens, opt)
	m.completionTokens.Add(ctx, completionTokens, opt)
}

// RecordToolCall records one invocation of tool. valid is false when the
// model named a tool that is not registered.
func (m *GenAI) RecordToolCall(ctx context.Context, model, tool string, valid bool) {
	m.toolCalls.Add(ctx, 1, m.attrs(ctx,
		attribute.String("model", model),
		attribute.String("tool", tool),
		attribute.Bool("valid", valid),
	))
}

// RecordIteration records one model round-trip.
func (m *GenAI) RecordIteration(ctx context.Context, model string) {
	m.iterations.Add(ctx, 1, m.attrs(ctx, attribute.String("model", model)))
}

// RecordParseFailure records a response that was neither an action nor a
// final answer.
func (m *GenAI) RecordParseFailure(ctx context.Context, model string) {
	m.parseFailures.Add(ctx, 1, m.attrs(ctx, attribute.String("model", model)))
}
