/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
	"slices"
)

// stringLiteral only admits untyped string constants at call sites.
type stringLiteral string

// Prompt is a template together with the values bound to its placeholders.
type Prompt struct {
	template string
	bindings map[string]binding
}

// NewPrompt parses template and records every placeholder as unbound.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	bindings := make(map[string]binding)
	tmpl, err := walkTemplate(string(template), func(name string) (string, error) {
		if _, ok := bindings[name]; !ok {
			bindings[name] = &unboundBinding{name: name}
		}
		return "{{" + name + "}}", nil
	})
	if err != nil {
		return nil, err
	}
	return &Prompt{template: tmpl, bindings: bindings}, nil
}

// Bindings returns the sorted placeholder names found in the template.
func (p *Prompt) Bindings() []string {
	return slices.Sorted(maps.Keys(p.bindings))
}

// Unbound returns the sorted placeholder names that still lack a value.
func (p *Prompt) Unbound() []string {
	var names []string
	for name, b := range p.bindings {
		if _, ok := b.(*unboundBinding); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// BindStringLiteral binds a developer-supplied constant.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.with(name, &textBinding{val: string(value)})
}

// BindText binds program-owned runtime text verbatim.
func (p *Prompt) BindText(name, value string) (*Prompt, error) {
	return p.with(name, &textBinding{val: value})
}

// BindXML binds data that is marshaled as XML when the prompt is built.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	return p.with(name, &xmlBinding{data: data})
}

func (p *Prompt) with(name string, b binding) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	np := &Prompt{
		template: p.template,
		bindings: maps.Clone(p.bindings),
	}
	np.bindings[name] = b
	return np, nil
}

// Build renders the template. It fails if any placeholder is unbound or a
// structured value cannot be marshaled.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		v, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = v
	}
	return walkTemplate(p.template, func(name string) (string, error) {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("internal error: binding %q not found in values map", name)
		}
		return v, nil
	})
}
