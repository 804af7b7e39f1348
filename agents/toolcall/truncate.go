/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

// DefaultBudget is the number of characters a tool may return to the model.
const DefaultBudget = 2000

// Truncate returns the first n characters (runes) of s. A non-positive n
// disables truncation.
func Truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
