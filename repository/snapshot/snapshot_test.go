/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package snapshot_test

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/xleven/ai-hackathon-judge/repository/snapshot"
)

func TestParseRepoID(t *testing.T) {
	tests := []struct {
		in      string
		want    snapshot.RepoID
		wantErr bool
	}{
		{in: "octocat/Hello-World", want: snapshot.RepoID{Owner: "octocat", Name: "Hello-World"}},
		{in: "  a/b ", want: snapshot.RepoID{Owner: "a", Name: "b"}},
		{in: "octocat", wantErr: true},
		{in: "/name", wantErr: true},
		{in: "owner/", wantErr: true},
		{in: "a/b/c", wantErr: true},
		{in: "a/b:README.md", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := snapshot.ParseRepoID(tt.in)
			if tt.wantErr {
				if !errors.Is(err, snapshot.ErrInvalidRepoID) {
					t.Errorf("ParseRepoID(%q): got = %v, wanted = %v", tt.in, err, snapshot.ErrInvalidRepoID)
				}
				return
			}
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("ParseRepoID(%q): got = %v, wanted = %v", tt.in, got, tt.want)
			}
			if got.String() != tt.want.Owner+"/"+tt.want.Name {
				t.Errorf("String(): got = %q", got.String())
			}
		})
	}
}

var sample = &snapshot.Snapshot{
	Repo: snapshot.RepoID{Owner: "octocat", Name: "Hello-World"},
	Files: []snapshot.File{
		{Path: ".github/workflows/ci.yml", Content: "on: push"},
		{Path: "README.md", Content: "Hello World!"},
		{Path: "src/main.go", Content: "package main"},
		{Path: "src/tests/main_test.go", Content: "package main"},
		{Path: "test/fixture.json", Content: "{}"},
		{Path: "src/contest.go", Content: "package main"},
		{Path: "README.md", Content: "duplicate"},
	},
}

func TestLookup(t *testing.T) {
	f, ok := sample.Lookup("README.md")
	if !ok || f.Content != "Hello World!" {
		t.Errorf("Lookup(README.md): got = (%q, %v), wanted first match", f.Content, ok)
	}
	if _, ok := sample.Lookup("readme.md"); ok {
		t.Error("Lookup(readme.md): got = true, wanted exact match only")
	}
}

func TestFilter(t *testing.T) {
	got := sample.Paths(snapshot.Hidden, snapshot.TestDir)
	want := []string{"README.md", "src/main.go", "src/contest.go", "README.md"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
	}

	// Filtering is pure.
	if len(sample.Files) != 7 {
		t.Errorf("Files: got = %d, wanted = 7", len(sample.Files))
	}
	if got := len(sample.Filter()); got != 7 {
		t.Errorf("Filter(): got = %d, wanted = 7", got)
	}
}

func TestTestDir(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "test/fixture.json", want: true},
		{path: "src/tests/main_test.go", want: true},
		{path: "scripts/test", want: true},
		{path: "tests", want: true},
		{path: "src/contest.go", want: false},
		{path: "testdata/in.txt", want: false},
		{path: "main_test.go", want: false},
	}
	for _, tt := range tests {
		if got := snapshot.TestDir(tt.path); got != tt.want {
			t.Errorf("TestDir(%q): got = %v, wanted = %v", tt.path, got, tt.want)
		}
	}
}

type countingSource struct {
	fetches atomic.Int32
	files   []snapshot.File
	err     error
	release chan struct{}
}

func (c *countingSource) Fetch(ctx context.Context, repo snapshot.RepoID, branch string) ([]snapshot.File, error) {
	c.fetches.Add(1)
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.files, nil
}

func TestProviderCachesLoads(t *testing.T) {
	src := &countingSource{files: []snapshot.File{{Path: "README.md", Content: "Hello World!"}}}
	p := snapshot.NewProvider(src, "main")
	ctx := context.Background()
	repo := snapshot.RepoID{Owner: "octocat", Name: "Hello-World"}

	first, err := p.Load(ctx, repo, "")
	require.NoError(t, err)
	second, err := p.Load(ctx, repo, "main")
	require.NoError(t, err)

	if n := src.fetches.Load(); n != 1 {
		t.Errorf("fetches: got = %d, wanted = 1", n)
	}
	if first != second {
		t.Error("Load(): got distinct snapshots, wanted the cached one")
	}
	if first.Branch != "main" {
		t.Errorf("Branch: got = %q, wanted = %q", first.Branch, "main")
	}

	if _, err := p.Load(ctx, repo, "dev"); err != nil {
		t.Fatalf("Load(dev): %v", err)
	}
	if n := src.fetches.Load(); n != 2 {
		t.Errorf("fetches after another branch: got = %d, wanted = 2", n)
	}
}

func TestProviderSingleWriter(t *testing.T) {
	src := &countingSource{
		files:   []snapshot.File{{Path: "a.go"}},
		release: make(chan struct{}),
	}
	p := snapshot.NewProvider(src, "main")
	repo := snapshot.RepoID{Owner: "o", Name: "r"}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*snapshot.Snapshot, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := p.Load(context.Background(), repo, "")
			if err != nil {
				t.Errorf("Load(): %v", err)
			}
			results[i] = s
		}()
	}
	// Let the single in-flight fetch finish once the callers have piled up.
	for src.fetches.Load() == 0 {
		runtime.Gosched()
	}
	close(src.release)
	wg.Wait()

	if n := src.fetches.Load(); n != 1 {
		t.Errorf("fetches: got = %d, wanted = 1", n)
	}
	for i, s := range results {
		if s != results[0] {
			t.Errorf("results[%d]: got a different snapshot", i)
		}
	}
}

func TestProviderWaiterDeadline(t *testing.T) {
	src := &countingSource{
		files:   []snapshot.File{{Path: "a.go"}},
		release: make(chan struct{}),
	}
	defer close(src.release)
	p := snapshot.NewProvider(src, "main")
	repo := snapshot.RepoID{Owner: "o", Name: "r"}

	go func() {
		_, _ = p.Load(context.Background(), repo, "")
	}()
	for src.fetches.Load() == 0 {
		runtime.Gosched()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		_, err := p.Load(ctx, repo, "")
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Load(): got = %v, wanted = %v", err, context.DeadlineExceeded)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Load() still blocked on the in-flight fetch after its deadline")
	}
}

func TestProviderCancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &countingSource{
		files:   []snapshot.File{{Path: "a.go"}},
		release: make(chan struct{}),
	}
	p := snapshot.NewProvider(src, "main")
	repo := snapshot.RepoID{Owner: "o", Name: "r"}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := p.Load(first, repo, "")
		firstErr <- err
	}()
	for src.fetches.Load() == 0 {
		runtime.Gosched()
	}

	type result struct {
		s   *snapshot.Snapshot
		err error
	}
	second := make(chan result, 1)
	go func() {
		s, err := p.Load(context.Background(), repo, "")
		second <- result{s, err}
	}()

	cancel()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("first Load(): got = %v, wanted = %v", err, context.Canceled)
	}

	close(src.release)
	got := <-second
	require.NoError(t, got.err)
	if got.s == nil || len(got.s.Files) != 1 {
		t.Errorf("second Load(): got = %v, wanted the fetched snapshot", got.s)
	}
	if n := src.fetches.Load(); n != 1 {
		t.Errorf("fetches: got = %d, wanted = 1", n)
	}
}

func TestProviderDoesNotCacheFailures(t *testing.T) {
	src := &countingSource{err: fmt.Errorf("%w: 404", snapshot.ErrRepositoryNotFound)}
	p := snapshot.NewProvider(src, "main")
	repo := snapshot.RepoID{Owner: "nobody", Name: "nothing"}

	for range 2 {
		_, err := p.Load(context.Background(), repo, "")
		if !errors.Is(err, snapshot.ErrRepositoryNotFound) {
			t.Errorf("Load(): got = %v, wanted = %v", err, snapshot.ErrRepositoryNotFound)
		}
	}
	if n := src.fetches.Load(); n != 2 {
		t.Errorf("fetches: got = %d, wanted = 2", n)
	}
}

func TestSourceFunc(t *testing.T) {
	var got snapshot.RepoID
	src := snapshot.SourceFunc(func(_ context.Context, repo snapshot.RepoID, _ string) ([]snapshot.File, error) {
		got = repo
		return nil, nil
	})
	want := snapshot.RepoID{Owner: "a", Name: "b"}
	if _, err := snapshot.NewProvider(src, "").Load(context.Background(), want, ""); err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if got != want {
		t.Errorf("Fetch repo: got = %v, wanted = %v", got, want)
	}
}
