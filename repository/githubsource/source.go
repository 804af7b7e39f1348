/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubsource is a snapshot.Source that reads repositories through
// the GitHub REST API instead of cloning them.
package githubsource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"unicode/utf8"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/xleven/ai-hackathon-judge/repository/snapshot"
)

// DefaultMaxFileSize skips blobs larger than this many bytes.
const DefaultMaxFileSize = 1 << 20

// Source reads the git tree and blobs of a branch.
type Source struct {
	client      *github.Client
	maxFileSize int
	concurrency int
}

var _ snapshot.Source = (*Source)(nil)

// New returns a Source using client.
func New(client *github.Client) *Source {
	return &Source{
		client:      client,
		maxFileSize: DefaultMaxFileSize,
		concurrency: 8,
	}
}

// NewFromToken returns a Source authenticated with token, or anonymous when
// token is empty.
func NewFromToken(ctx context.Context, token string) *Source {
	var hc *http.Client
	if token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	return New(github.NewClient(hc))
}

// Fetch implements snapshot.Source.
func (s *Source) Fetch(ctx context.Context, repo snapshot.RepoID, branch string) ([]snapshot.File, error) {
	log := clog.FromContext(ctx).With("repository", repo.String())

	if branch == "" {
		r, resp, err := s.client.Repositories.Get(ctx, repo.Owner, repo.Name)
		if err != nil {
			return nil, mapError(resp, fmt.Errorf("getting repository %s: %w", repo, err))
		}
		branch = r.GetDefaultBranch()
		log.With("branch", branch).Debug("Resolved default branch")
	}

	tree, resp, err := s.client.Git.GetTree(ctx, repo.Owner, repo.Name, branch, true)
	if err != nil {
		return nil, mapError(resp, fmt.Errorf("getting tree %s@%s: %w", repo, branch, err))
	}
	if tree.GetTruncated() {
		log.Warn("GitHub truncated the tree listing, snapshot is partial")
	}

	var entries []*github.TreeEntry
	for _, e := range tree.Entries {
		if e.GetType() == "blob" && e.GetSize() <= s.maxFileSize {
			entries = append(entries, e)
		}
	}

	// Blobs are fetched concurrently but kept in tree order.
	contents := make([]string, len(entries))
	text := make([]bool, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	var mu sync.Mutex
	skipped := len(tree.Entries) - len(entries)
	for i, e := range entries {
		g.Go(func() error {
			b, _, err := s.client.Git.GetBlobRaw(gctx, repo.Owner, repo.Name, e.GetSHA())
			if err != nil {
				return fmt.Errorf("getting blob %s: %w", e.GetPath(), err)
			}
			if !utf8.Valid(b) {
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			contents[i], text[i] = string(b), true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]snapshot.File, 0, len(entries))
	for i, e := range entries {
		if text[i] {
			files = append(files, snapshot.File{Path: e.GetPath(), Content: contents[i]})
		}
	}
	log.With("files", len(files)).With("skipped", skipped).Info("Read repository through the GitHub API")
	return files, nil
}

func mapError(resp *github.Response, err error) error {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", snapshot.ErrRepositoryNotFound, err)
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", snapshot.ErrRepositoryNotFound, err)
	}
	return err
}
