/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agenttrace records what happened during one agent run.

A Trace captures the initial prompt, every tool call with its input and
observation, the number of loop iterations and the final result or error. Each
trace and tool call is mirrored as an OpenTelemetry span.

Traces are created through a Tracer carried on the context:

	tracer := agenttrace.ByCode(func(tr *agenttrace.Trace) {
		log.Printf("run %s took %v", tr.ID, tr.Duration())
	})
	ctx = agenttrace.WithTracer(ctx, tracer)

	tr := agenttrace.StartTrace(ctx, prompt)
	tc := tr.StartToolCall("get_repo_info", "octocat/Hello-World")
	tc.Complete("Repo: octocat/Hello-World ...", nil)
	tr.Complete("Score: 80/100 ...", nil)

Without an explicit tracer, StartTrace uses a default tracer that logs the
completed trace through clog.
*/
package agenttrace
