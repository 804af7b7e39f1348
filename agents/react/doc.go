/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package react drives a text-protocol reasoning loop.
//
// On every iteration the executor renders the scratchpad into the prompt's
// {{agent_scratchpad}} binding, asks the model for a completion and parses
// it with Parse. The model answers in the Thought/Action/Action Input/Final
// Answer convention:
//
//	Thought: I should look at the repository first
//	Action: get_repo_info
//	Action Input: octocat/Hello-World
//
// An action runs the named tool and its output is appended to the scratchpad
// as an Observation. A final answer ends the loop. Output that matches
// neither form, and actions naming unknown tools, are reported back to the
// model as observations so it can correct itself.
//
// Usage:
//
//	exec, err := react.New(model, tools, react.WithMaxIterations(10))
//	if err != nil {
//		return err
//	}
//	result, err := exec.Run(ctx, prompt)
package react
