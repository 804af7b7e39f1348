/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Must panics if err is non-nil. It is meant for package-level templates that
// are known to be valid:
//
//	var p = promptbuilder.Must(promptbuilder.NewPrompt(`Hello {{name}}`))
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// MustNewPrompt is Must(NewPrompt(template)).
func MustNewPrompt(template stringLiteral) *Prompt {
	return Must(NewPrompt(template))
}

// MustBindStringLiteral is Must(p.BindStringLiteral(name, value)).
func (p *Prompt) MustBindStringLiteral(name string, value stringLiteral) *Prompt {
	return Must(p.BindStringLiteral(name, value))
}
