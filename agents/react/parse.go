/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package react

import (
	"strings"
)

// Kind tags the variant held by a Step.
type Kind int

const (
	KindUnparsable Kind = iota
	KindAction
	KindFinalAnswer
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindFinalAnswer:
		return "final_answer"
	default:
		return "unparsable"
	}
}

const (
	finalAnswerMarker = "Final Answer:"
	actionMarker      = "Action:"
	actionInputMarker = "Action Input:"
	observationMarker = "\nObservation:"
	thoughtMarker     = "Thought:"
)

// Step is one parsed model response.
type Step struct {
	Kind Kind
	// Thought is the reasoning that preceded the action or answer.
	Thought string

	Tool  string // KindAction
	Input string // KindAction

	Answer string // KindFinalAnswer

	// Problem explains, in words meant for the model, why the text could
	// not be parsed. KindUnparsable only.
	Problem string
}

// Parse reads a model response. A line starting with "Final Answer:" wins
// over an action; otherwise an "Action:" line must be followed by an
// "Action Input:" line. Anything after a model-invented "Observation:" line
// is ignored.
func Parse(text string) Step {
	if i := strings.Index(text, observationMarker); i >= 0 {
		text = text[:i]
	}
	lines := strings.Split(text, "\n")

	if i, rest, ok := findLine(lines, 0, finalAnswerMarker); ok {
		return Step{
			Kind:    KindFinalAnswer,
			Thought: thought(lines[:i]),
			Answer:  strings.TrimSpace(joinRest(rest, lines[i+1:])),
		}
	}

	ai, tool, ok := findLine(lines, 0, actionMarker)
	if !ok {
		return Step{
			Kind:    KindUnparsable,
			Thought: thought(lines),
			Problem: "Invalid Format: Missing 'Action:' after 'Thought:'",
		}
	}
	tool = strings.Trim(tool, " \t\r`*")
	if tool == "" {
		return Step{
			Kind:    KindUnparsable,
			Thought: thought(lines[:ai]),
			Problem: "Invalid Format: Missing tool name after 'Action:'",
		}
	}

	ii, input, ok := findLine(lines, ai+1, actionInputMarker)
	if !ok {
		return Step{
			Kind:    KindUnparsable,
			Thought: thought(lines[:ai]),
			Problem: "Invalid Format: Missing 'Action Input:' after 'Action:'",
		}
	}
	return Step{
		Kind:    KindAction,
		Thought: thought(lines[:ai]),
		Tool:    tool,
		Input:   cleanInput(joinRest(input, lines[ii+1:])),
	}
}

// findLine returns the index of the first line at or after start whose
// trimmed text begins with marker, and the text following the marker.
func findLine(lines []string, start int, marker string) (int, string, bool) {
	for i := start; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if strings.HasPrefix(l, marker) {
			return i, strings.TrimPrefix(l, marker), true
		}
	}
	return -1, "", false
}

func joinRest(first string, rest []string) string {
	if len(rest) == 0 {
		return first
	}
	return first + "\n" + strings.Join(rest, "\n")
}

func thought(lines []string) string {
	t := strings.TrimSpace(strings.Join(lines, "\n"))
	return strings.TrimSpace(strings.TrimPrefix(t, thoughtMarker))
}

func cleanInput(s string) string {
	return strings.Trim(strings.TrimSpace(s), " \t\r\n\"'`")
}
