/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package snapshot

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/singleflight"
)

// Source fetches the files of a repository. An empty branch means the
// remote's default branch. Sources report unresolvable repositories with
// ErrRepositoryNotFound.
type Source interface {
	Fetch(ctx context.Context, repo RepoID, branch string) ([]File, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context, repo RepoID, branch string) ([]File, error)

// Fetch implements Source.
func (f SourceFunc) Fetch(ctx context.Context, repo RepoID, branch string) ([]File, error) {
	return f(ctx, repo, branch)
}

// Provider caches snapshots per repository and branch for the life of the
// process. Failed loads are not cached.
type Provider struct {
	source        Source
	defaultBranch string

	group singleflight.Group

	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

// NewProvider returns a Provider reading from source. defaultBranch is used
// when Load is called without a branch; leave it empty to follow the
// remote's HEAD.
func NewProvider(source Source, defaultBranch string) *Provider {
	return &Provider{
		source:        source,
		defaultBranch: defaultBranch,
		snapshots:     make(map[string]*Snapshot),
	}
}

// Load returns the snapshot of repo at branch, fetching it on first use.
// Concurrent callers share one fetch. A caller whose ctx ends stops waiting
// and gets its context's cause; the fetch keeps running for the others.
func (p *Provider) Load(ctx context.Context, repo RepoID, branch string) (*Snapshot, error) {
	branch = cmp.Or(branch, p.defaultBranch)
	key := repo.String() + "@" + branch

	if s, ok := p.cached(key); ok {
		return s, nil
	}

	// Shared fetches ignore any one caller's cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan(key, func() (any, error) {
		// Double-check: another caller may have finished while we waited.
		if s, ok := p.cached(key); ok {
			return s, nil
		}

		log := clog.FromContext(fetchCtx).With("repository", repo.String()).With("branch", branch)
		log.Info("Fetching repository snapshot")

		files, err := p.source.Fetch(fetchCtx, repo, branch)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", repo, err)
		}

		s := &Snapshot{Repo: repo, Branch: branch, Files: slices.Clone(files)}
		p.mu.Lock()
		p.snapshots[key] = s
		p.mu.Unlock()

		log.With("files", len(files)).Info("Cached repository snapshot")
		return s, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load %s: %w", repo, context.Cause(ctx))
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			clog.FromContext(ctx).With("repository", repo.String()).Debug("Shared in-flight snapshot load")
		}
		return res.Val.(*Snapshot), nil
	}
}

func (p *Provider) cached(key string) (*Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.snapshots[key]
	return s, ok
}
