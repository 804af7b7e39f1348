/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package snapshot

import (
	"slices"
	"strings"
)

// File is one file of a repository.
type File struct {
	Path    string
	Content string
}

// Snapshot is an immutable view of a repository at one branch. Files keep
// the order the Source produced them in.
type Snapshot struct {
	Repo   RepoID
	Branch string
	Files  []File
}

// Lookup returns the first file whose path is exactly path.
func (s *Snapshot) Lookup(path string) (File, bool) {
	for _, f := range s.Files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}

// Predicate selects files by path.
type Predicate func(path string) bool

// Hidden matches paths starting with a dot.
func Hidden(path string) bool {
	return strings.HasPrefix(path, ".")
}

// TestDir matches paths with a "test" or "tests" segment, whether that
// segment is a directory or the file itself.
func TestDir(path string) bool {
	return slices.ContainsFunc(strings.Split(path, "/"), func(s string) bool {
		return s == "test" || s == "tests"
	})
}

// Filter returns the files matched by none of exclude, in snapshot order.
func (s *Snapshot) Filter(exclude ...Predicate) []File {
	out := make([]File, 0, len(s.Files))
	for _, f := range s.Files {
		if !slices.ContainsFunc(exclude, func(p Predicate) bool { return p(f.Path) }) {
			out = append(out, f)
		}
	}
	return out
}

// Paths is Filter reduced to paths.
func (s *Snapshot) Paths(exclude ...Predicate) []string {
	files := s.Filter(exclude...)
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}
