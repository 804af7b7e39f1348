/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// resolveFunc supplies the replacement text for a placeholder name.
type resolveFunc func(name string) (string, error)

// walkTemplate scans template for {{name}} placeholders and replaces each with
// the value returned by resolve. Parsing and rendering share this function so
// they always agree on what a placeholder is.
func walkTemplate(template string, resolve resolveFunc) (string, error) {
	var out strings.Builder
	out.Grow(len(template))

	for template != "" {
		start := strings.Index(template, "{{")
		if start == -1 {
			out.WriteString(template)
			break
		}
		out.WriteString(template[:start])

		end := strings.Index(template[start:], "}}")
		if end == -1 {
			return "", errors.New("unclosed binding: missing '}}'")
		}
		end += start + 2

		name := strings.TrimSpace(template[start+2 : end-2])
		if !isValidIdentifier(name) {
			return "", fmt.Errorf("invalid binding identifier %q", name)
		}
		replacement, err := resolve(name)
		if err != nil {
			return "", err
		}
		out.WriteString(replacement)

		template = template[end:]
	}

	return out.String(), nil
}

// isValidIdentifier reports whether s starts with a letter and continues with
// letters, digits or underscores.
func isValidIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_'):
		default:
			return false
		}
	}
	return s != ""
}
