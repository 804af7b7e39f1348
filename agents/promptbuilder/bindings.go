/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/xml"
	"fmt"
)

type binding interface {
	value() (string, error)
}

// unboundBinding marks a placeholder that has not been given a value yet.
type unboundBinding struct {
	name string
}

func (u *unboundBinding) value() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", u.name)
}

// textBinding holds text that is inserted verbatim.
type textBinding struct {
	val string
}

func (t *textBinding) value() (string, error) {
	return t.val, nil
}

// xmlBinding holds data that is marshaled as indented XML on Build.
type xmlBinding struct {
	data any
}

func (x *xmlBinding) value() (string, error) {
	b, err := xml.MarshalIndent(x.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal XML: %w", err)
	}
	return string(b), nil
}

func existsAndUnbound(bindings map[string]binding, name string) error {
	b, ok := bindings[name]
	if !ok {
		return fmt.Errorf("binding %q not found in template", name)
	}
	if _, unbound := b.(*unboundBinding); !unbound {
		return fmt.Errorf("binding %q already bound", name)
	}
	return nil
}
