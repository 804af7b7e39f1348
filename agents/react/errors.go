/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package react

import "errors"

var (
	// ErrUnparsableResponse is returned under WithStrictParsing when the
	// model's text matches neither an action nor a final answer.
	ErrUnparsableResponse = errors.New("unparsable model response")

	// ErrInvalidTool marks calls to unregistered tools. It never ends a run;
	// it only appears on the recorded tool call.
	ErrInvalidTool = errors.New("invalid tool")

	// ErrIterationLimitExceeded is returned when the run hits its iteration
	// or wall-clock budget.
	ErrIterationLimitExceeded = errors.New("iteration limit exceeded")

	// ErrTimeout is returned, together with ErrIterationLimitExceeded, when
	// the wall-clock budget runs out.
	ErrTimeout = errors.New("reasoning loop timed out")

	// ErrCancelled is returned when the caller cancels the context.
	ErrCancelled = errors.New("reasoning loop cancelled")

	// ErrUpstreamModel wraps transport and auth failures from the model.
	ErrUpstreamModel = errors.New("upstream model error")
)
