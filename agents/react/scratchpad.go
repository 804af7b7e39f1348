/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package react

import (
	"strings"
)

// EntryKind identifies the kind of a scratchpad entry.
type EntryKind int

const (
	EntryThought EntryKind = iota
	EntryAction
	EntryObservation
)

func (k EntryKind) String() string {
	switch k {
	case EntryAction:
		return "Action"
	case EntryObservation:
		return "Observation"
	default:
		return "Thought"
	}
}

// Entry is one line of reasoning, one tool request or one tool result.
type Entry struct {
	Kind EntryKind
	// Text is the thought or observation. Empty for actions.
	Text string
	// Tool and Input are set for actions.
	Tool  string
	Input string
}

// Scratchpad is the ordered transcript of a run. Entries are only ever
// appended, and only by the executor.
type Scratchpad struct {
	entries []Entry
}

// Entries returns a copy of the transcript.
func (s *Scratchpad) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Scratchpad) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// record appends one round. Observations close a round; a round without an
// observation is a closing thought.
func (s *Scratchpad) record(thought string, action *Entry, observation *string) {
	if thought != "" {
		s.entries = append(s.entries, Entry{Kind: EntryThought, Text: thought})
	}
	if action != nil {
		s.entries = append(s.entries, Entry{Kind: EntryAction, Tool: action.Tool, Input: action.Input})
	}
	if observation != nil {
		s.entries = append(s.entries, Entry{Kind: EntryObservation, Text: *observation})
	}
}

// String renders the transcript the way the model is asked to write it, so
// that the prompt ending in "Thought:" continues naturally.
func (s *Scratchpad) String() string {
	if s.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i, e := range s.entries {
		// Without a thought, the prompt's trailing "Thought:" still needs its
		// own line before the action or observation.
		if e.Kind != EntryThought && (i == 0 || s.entries[i-1].Kind == EntryObservation) {
			sb.WriteString("\n")
		}
		switch e.Kind {
		case EntryThought:
			sb.WriteString(" ")
			sb.WriteString(e.Text)
			sb.WriteString("\n")
		case EntryAction:
			sb.WriteString("Action: ")
			sb.WriteString(e.Tool)
			sb.WriteString("\nAction Input: ")
			sb.WriteString(e.Input)
			sb.WriteString("\n")
		case EntryObservation:
			sb.WriteString("Observation: ")
			sb.WriteString(e.Text)
			sb.WriteString("\nThought:")
		}
	}
	return sb.String()
}
