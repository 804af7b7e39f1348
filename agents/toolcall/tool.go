/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// InvokeFunc runs a tool on the raw input extracted from model output.
// Problems the model can fix (bad input, missing files) should be reported in
// the returned string; errors are reserved for infrastructure failures.
type InvokeFunc func(ctx context.Context, input string) (string, error)

// Tool is a named, described capability.
type Tool struct {
	Name        string
	Description string
	Invoke      InvokeFunc
}

// Registry is an immutable, ordered set of tools.
type Registry struct {
	tools  []Tool
	byName map[string]int
}

// NewRegistry validates tools and returns a registry preserving their order.
func NewRegistry(tools ...Tool) (*Registry, error) {
	if len(tools) == 0 {
		return nil, errors.New("at least one tool is required")
	}
	r := &Registry{
		tools:  make([]Tool, 0, len(tools)),
		byName: make(map[string]int, len(tools)),
	}
	for _, t := range tools {
		switch {
		case strings.TrimSpace(t.Name) == "":
			return nil, errors.New("tool name cannot be empty")
		case strings.ContainsAny(t.Name, " \t\r\n,"):
			return nil, fmt.Errorf("tool name %q must not contain whitespace or commas", t.Name)
		case t.Invoke == nil:
			return nil, fmt.Errorf("tool %q has no invoke function", t.Name)
		}
		if _, dup := r.byName[t.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", t.Name)
		}
		r.byName[t.Name] = len(r.tools)
		r.tools = append(r.tools, t)
	}
	return r, nil
}

// Lookup returns the tool registered under exactly name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Names returns the comma separated tool names, e.g. "a, b".
func (r *Registry) Names() string {
	names := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}

// Describe renders one "name: description" line per tool.
func (r *Registry) Describe() string {
	lines := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		lines = append(lines, t.Name+": "+t.Description)
	}
	return strings.Join(lines, "\n")
}
