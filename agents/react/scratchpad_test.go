/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package react

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScratchpadString(t *testing.T) {
	var pad Scratchpad
	if got := pad.String(); got != "" {
		t.Errorf("String(): got = %q, wanted empty", got)
	}

	obs1, obs2 := "Repo: a/b", "Invalid Format: Missing 'Action:' after 'Thought:'"
	pad.record("look around", &Entry{Tool: "get_repo_info", Input: "a/b"}, &obs1)
	pad.record("rambling", nil, &obs2)

	want := " look around\n" +
		"Action: get_repo_info\nAction Input: a/b\n" +
		"Observation: Repo: a/b\nThought:" +
		" rambling\n" +
		"Observation: Invalid Format: Missing 'Action:' after 'Thought:'\nThought:"
	if diff := cmp.Diff(want, pad.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}

func TestScratchpadStringWithoutThoughts(t *testing.T) {
	var pad Scratchpad
	obs1, obs2 := "Repo: a/b", "Invalid Format: Missing 'Action:' after 'Thought:'"
	pad.record("", &Entry{Tool: "get_repo_info", Input: "a/b"}, &obs1)
	pad.record("", nil, &obs2)

	want := "\nAction: get_repo_info\nAction Input: a/b\n" +
		"Observation: Repo: a/b\nThought:" +
		"\nObservation: Invalid Format: Missing 'Action:' after 'Thought:'\nThought:"
	if diff := cmp.Diff(want, pad.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}

func TestScratchpadEntries(t *testing.T) {
	var pad Scratchpad
	obs := "ok"
	pad.record("", &Entry{Tool: "t", Input: "i"}, &obs)

	want := []Entry{
		{Kind: EntryAction, Tool: "t", Input: "i"},
		{Kind: EntryObservation, Text: "ok"},
	}
	got := pad.Entries()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	// Entries hands out a copy.
	got[0].Tool = "changed"
	if pad.Entries()[0].Tool != "t" {
		t.Error("Entries(): mutation leaked into the scratchpad")
	}
}

func TestNilScratchpad(t *testing.T) {
	var pad *Scratchpad
	if pad.Len() != 0 || pad.Entries() != nil || pad.String() != "" {
		t.Error("nil scratchpad should be empty")
	}
}
