/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

// mockTracer collects recorded traces.
type mockTracer struct {
	mu     sync.Mutex
	traces []*Trace
}

func (m *mockTracer) NewTrace(ctx context.Context, prompt string) *Trace {
	return newTrace(ctx, m, prompt)
}

func (m *mockTracer) RecordTrace(trace *Trace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.traces = append(m.traces, trace)
}

func TestWithTracer(t *testing.T) {
	ctx := context.Background()
	tracer := &mockTracer{}

	if got := TracerFromContext(WithTracer(ctx, tracer)); got != tracer {
		t.Errorf("TracerFromContext(): got = %v, wanted = %v", got, tracer)
	}
	if got := TracerFromContext(ctx); got == nil {
		t.Error("TracerFromContext(empty): got = nil, wanted = default tracer")
	}
}

func TestTraceLifecycle(t *testing.T) {
	tracer := &mockTracer{}
	ctx := WithTracer(context.Background(), tracer)
	ctx = WithExecutionContext(ctx, ExecutionContext{Repository: "octocat/Hello-World", Model: "gpt-4"})

	tr := StartTrace(ctx, "You are the judge of ...")
	if tr.ExecContext.Repository != "octocat/Hello-World" {
		t.Errorf("ExecContext.Repository: got = %q, wanted = %q", tr.ExecContext.Repository, "octocat/Hello-World")
	}

	tr.RecordIteration()
	tc := tr.StartToolCall("get_repo_info", "octocat/Hello-World")
	if len(tr.ToolCalls) != 0 {
		t.Errorf("tool calls before Complete: got = %d, wanted = 0", len(tr.ToolCalls))
	}
	tc.Complete("Repo: octocat/Hello-World", nil)

	tr.RecordIteration()
	tr.BadToolCall("get_weather", "today", errors.New("unknown tool"))
	tr.RecordIteration()

	if len(tracer.traces) != 0 {
		t.Fatalf("recorded before Complete: got = %d, wanted = 0", len(tracer.traces))
	}
	tr.Complete("Final score: 80", nil)

	if len(tracer.traces) != 1 || tracer.traces[0] != tr {
		t.Fatalf("recorded traces: got = %v, wanted = [%v]", tracer.traces, tr)
	}
	if tr.Iterations != 3 {
		t.Errorf("Iterations: got = %d, wanted = 3", tr.Iterations)
	}
	if len(tr.ToolCalls) != 2 {
		t.Fatalf("ToolCalls: got = %d, wanted = 2", len(tr.ToolCalls))
	}
	if tr.ToolCalls[1].Error == nil {
		t.Error("bad tool call error: got = nil, wanted error")
	}

	s := tr.String()
	for _, want := range []string{"Repository: octocat/Hello-World", "Iterations: 3", "get_repo_info", "unknown tool", "Final score: 80"} {
		if !strings.Contains(s, want) {
			t.Errorf("String(): missing %q in %q", want, s)
		}
	}
	if tr.Duration() < 0 {
		t.Errorf("Duration(): got = %v, wanted >= 0", tr.Duration())
	}
}

func TestByCode(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	cb := func(*Trace) {
		mu.Lock()
		defer mu.Unlock()
		calls++
	}

	tracer := ByCode(cb, nil, cb)
	tr := tracer.NewTrace(context.Background(), "prompt")
	tr.Complete("", errors.New("boom"))

	if calls != 2 {
		t.Errorf("callback invocations: got = %d, wanted = 2", calls)
	}
	if !strings.Contains(tr.String(), "Error: boom") {
		t.Errorf("String(): got = %q, wanted error line", tr.String())
	}
}

func TestDefaultTracer(t *testing.T) {
	// Must not panic without a logger or tracer on the context.
	tr := StartTrace(context.Background(), "prompt")
	tr.Complete("done", nil)
}
