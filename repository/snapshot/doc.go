/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package snapshot holds in-memory copies of repository file trees.
//
// A Provider loads each (repository, branch) pair at most once per process
// through a Source and serves the cached Snapshot afterwards. Concurrent
// callers asking for the same uncached pair share a single fetch.
//
//	p := snapshot.NewProvider(source, "main")
//	snap, err := p.Load(ctx, snapshot.RepoID{Owner: "octocat", Name: "Hello-World"}, "")
//	if errors.Is(err, snapshot.ErrRepositoryNotFound) {
//		// neither the cache nor the remote had it
//	}
//	readme, ok := snap.Lookup("README.md")
package snapshot
