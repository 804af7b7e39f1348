/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package snapshot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRepositoryNotFound is returned when a repository cannot be
	// resolved from the local cache or the remote.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrInvalidRepoID is returned by ParseRepoID.
	ErrInvalidRepoID = errors.New("invalid repository id")
)

// RepoID names a repository as owner/name.
type RepoID struct {
	Owner string
	Name  string
}

// ParseRepoID parses "owner/name". Neither half may be empty and the id may
// not contain ':' or further '/'.
func ParseRepoID(s string) (RepoID, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		return RepoID{}, fmt.Errorf("%w %q: must not contain ':'", ErrInvalidRepoID, s)
	}
	owner, name, ok := strings.Cut(s, "/")
	switch {
	case !ok:
		return RepoID{}, fmt.Errorf("%w %q: expected owner/name", ErrInvalidRepoID, s)
	case owner == "" || name == "":
		return RepoID{}, fmt.Errorf("%w %q: owner and name must not be empty", ErrInvalidRepoID, s)
	case strings.Contains(name, "/"):
		return RepoID{}, fmt.Errorf("%w %q: expected exactly one '/'", ErrInvalidRepoID, s)
	}
	return RepoID{Owner: owner, Name: name}, nil
}

func (r RepoID) String() string {
	return r.Owner + "/" + r.Name
}
