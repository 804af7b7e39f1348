/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package promptbuilder assembles prompt text from templates with named
// {{binding}} placeholders.
//
// A Prompt is immutable: every Bind call returns a new Prompt, so a partially
// bound template can be shared and re-bound on every iteration of an agent
// loop. Build fails while any placeholder is still unbound.
//
//	var p = promptbuilder.MustNewPrompt(`You are the judge of {{title}}.`)
//
//	bound, err := p.BindText("title", hackathon.Title)
//	if err != nil {
//		return err
//	}
//	text, err := bound.Build()
//
// Three kinds of values can be bound:
//   - BindStringLiteral accepts only compile-time string constants.
//   - BindText accepts runtime text owned by the program (tool listings,
//     transcripts) and inserts it verbatim.
//   - BindXML marshals structured, possibly user-supplied data so that it is
//     delimited from the surrounding instructions.
package promptbuilder
