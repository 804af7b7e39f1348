/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package react

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/chainguard-dev/clog"

	"github.com/xleven/ai-hackathon-judge/agents/agenttrace"
	"github.com/xleven/ai-hackathon-judge/agents/metrics"
	"github.com/xleven/ai-hackathon-judge/agents/model"
	"github.com/xleven/ai-hackathon-judge/agents/promptbuilder"
	"github.com/xleven/ai-hackathon-judge/agents/retry"
	"github.com/xleven/ai-hackathon-judge/agents/toolcall"
)

// Prompt bindings filled in by the executor.
const (
	ScratchpadBinding = "agent_scratchpad"
	ToolsBinding      = "tool_strings"
	ToolNamesBinding  = "tool_names"
)

// DefaultMaxIterations is used unless WithMaxIterations is given.
const DefaultMaxIterations = 15

// Interface runs the reasoning loop for one request.
type Interface interface {
	// Run binds request into the prompt and loops until the model gives a
	// final answer. The Result is non-nil whenever the loop started, so
	// callers can inspect the partial scratchpad of a failed run.
	Run(ctx context.Context, request promptbuilder.Bindable) (*Result, error)
}

// Result is the outcome of a run.
type Result struct {
	// Answer is the text after the final-answer marker, verbatim.
	Answer     string
	Scratchpad *Scratchpad
	// Iterations counts model calls.
	Iterations int
	// ToolCalls counts invocations of registered tools.
	ToolCalls int
}

type executor struct {
	model         model.Model
	prompt        *promptbuilder.Prompt
	tools         *toolcall.Registry
	maxIterations int
	maxDuration   time.Duration
	strict        bool
	retryConfig   retry.Config
	genaiMetrics  *metrics.GenAI
}

// New creates an executor. The prompt must contain the agent_scratchpad
// binding; tool_strings and tool_names are filled from tools when the
// request leaves them unbound.
func New(m model.Model, prompt *promptbuilder.Prompt, tools *toolcall.Registry, opts ...Option) (Interface, error) {
	switch {
	case m == nil:
		return nil, errors.New("model cannot be nil")
	case prompt == nil:
		return nil, errors.New("prompt cannot be nil")
	case tools == nil:
		return nil, errors.New("tools cannot be nil")
	case !slices.Contains(prompt.Bindings(), ScratchpadBinding):
		return nil, fmt.Errorf("prompt has no {{%s}} binding", ScratchpadBinding)
	}

	e := &executor{
		model:         m,
		prompt:        prompt,
		tools:         tools,
		maxIterations: DefaultMaxIterations,
		retryConfig:   retry.None(),
		genaiMetrics:  metrics.NewGenAI("hackathon.judge.agents"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

func (e *executor) Run(ctx context.Context, request promptbuilder.Bindable) (result *Result, err error) {
	if request == nil {
		request = promptbuilder.Noop{}
	}
	bound, err := e.bind(request)
	if err != nil {
		return nil, err
	}
	initial, err := render(bound, &Scratchpad{})
	if err != nil {
		return nil, err
	}

	if e.maxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, e.maxDuration, ErrTimeout)
		defer cancel()
	}

	log := clog.FromContext(ctx).With("model", e.model.Name())
	trace := agenttrace.StartTrace(ctx, initial)
	result = &Result{Scratchpad: &Scratchpad{}}
	defer func() {
		trace.Complete(result.Answer, err)
	}()

	log.With("prompt_length", len(initial)).
		With("max_iterations", e.maxIterations).
		Info("Starting reasoning loop")

	pad := result.Scratchpad
	for result.Iterations < e.maxIterations {
		if ctx.Err() != nil {
			return result, e.contextError(ctx)
		}
		prompt, err := render(bound, pad)
		if err != nil {
			return result, err
		}

		result.Iterations++
		trace.RecordIteration()
		e.genaiMetrics.RecordIteration(ctx, e.model.Name())

		completion, err := retry.Do(ctx, e.retryConfig, "model_complete", func(err error) bool {
			return model.IsRetryable(e.model, err)
		}, func() (model.Completion, error) {
			return e.model.Complete(ctx, prompt)
		})
		if ctx.Err() != nil {
			return result, e.contextError(ctx)
		}
		if errors.Is(err, model.ErrEmptyCompletion) {
			// The model answered with nothing; parse it like any other reply.
			completion, err = model.Completion{}, nil
		}
		if err != nil {
			log.With("iteration", result.Iterations).With("error", err.Error()).Error("Model call failed")
			return result, fmt.Errorf("%w: %w", ErrUpstreamModel, err)
		}
		if completion.InputTokens > 0 || completion.OutputTokens > 0 {
			e.genaiMetrics.RecordTokens(ctx, e.model.Name(), completion.InputTokens, completion.OutputTokens)
			trace.RecordTokenUsage(e.model.Name(), completion.InputTokens, completion.OutputTokens)
		}

		step := Parse(completion.Text)
		log.With("iteration", result.Iterations).
			With("kind", step.Kind.String()).
			Debug("Parsed model response")

		switch step.Kind {
		case KindFinalAnswer:
			pad.record(step.Thought, nil, nil)
			result.Answer = step.Answer
			log.With("iterations", result.Iterations).
				With("tool_calls", result.ToolCalls).
				Info("Reasoning loop finished")
			return result, nil

		case KindUnparsable:
			e.genaiMetrics.RecordParseFailure(ctx, e.model.Name())
			if e.strict {
				return result, fmt.Errorf("%w: %s", ErrUnparsableResponse, step.Problem)
			}
			log.With("problem", step.Problem).Warn("Unparsable model response, asking the model to correct it")
			pad.record(step.Thought, nil, &step.Problem)

		case KindAction:
			action := &Entry{Tool: step.Tool, Input: step.Input}
			tool, ok := e.tools.Lookup(step.Tool)
			if !ok {
				observation := fmt.Sprintf("%s is not a valid tool, try one of [%s].", step.Tool, e.tools.Names())
				trace.BadToolCall(step.Tool, step.Input, fmt.Errorf("%w: %q", ErrInvalidTool, step.Tool))
				e.genaiMetrics.RecordToolCall(ctx, e.model.Name(), step.Tool, false)
				log.With("tool", step.Tool).Warn("Model requested an unknown tool")
				pad.record(step.Thought, action, &observation)
				continue
			}

			tc := trace.StartToolCall(step.Tool, step.Input)
			output, err := tool.Invoke(ctx, step.Input)
			tc.Complete(output, err)
			if ctx.Err() != nil {
				return result, e.contextError(ctx)
			}
			result.ToolCalls++
			e.genaiMetrics.RecordToolCall(ctx, e.model.Name(), step.Tool, true)
			if err != nil {
				log.With("tool", step.Tool).With("error", err.Error()).Warn("Tool failed")
				output = "Error: " + err.Error()
			}
			pad.record(step.Thought, action, &output)
		}
	}

	log.With("iterations", result.Iterations).Warn("Reasoning loop hit the iteration limit")
	return result, fmt.Errorf("%w: no final answer after %d iterations", ErrIterationLimitExceeded, e.maxIterations)
}

// bind applies the request and fills the tool bindings it left open.
func (e *executor) bind(request promptbuilder.Bindable) (*promptbuilder.Prompt, error) {
	p, err := request.Bind(e.prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	unbound := p.Unbound()
	for name, value := range map[string]string{
		ToolsBinding:     e.tools.Describe(),
		ToolNamesBinding: e.tools.Names(),
	} {
		if !slices.Contains(unbound, name) {
			continue
		}
		if p, err = p.BindText(name, value); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}
	return p, nil
}

func render(p *promptbuilder.Prompt, pad *Scratchpad) (string, error) {
	p, err := p.BindText(ScratchpadBinding, pad.String())
	if err != nil {
		return "", fmt.Errorf("failed to bind scratchpad: %w", err)
	}
	text, err := p.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}
	return text, nil
}

// contextError classifies a finished context. Deadlines, ours or the
// caller's, count as timeouts.
func (e *executor) contextError(ctx context.Context) error {
	cause := context.Cause(ctx)
	if errors.Is(cause, ErrTimeout) || errors.Is(cause, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, ErrIterationLimitExceeded)
	}
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
