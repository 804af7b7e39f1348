/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package clonemanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/chainguard-dev/clog"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"golang.org/x/oauth2"

	"github.com/xleven/ai-hackathon-judge/repository/snapshot"
)

// DefaultMaxFileSize skips files that could never fit in a prompt anyway.
const DefaultMaxFileSize = 1 << 20

// defaultBranchDir holds clones of the remote's default branch.
const defaultBranchDir = "_default"

// repoURL resolves the remote git URL for a repository. Tests override it to
// point at local repositories.
var repoURL = defaultRemoteURL

func defaultRemoteURL(repo snapshot.RepoID) string {
	return fmt.Sprintf("https://github.com/%s/%s", repo.Owner, repo.Name)
}

// Option configures a Manager.
type Option func(*Manager) error

// WithTokenSource authenticates clones, for private repositories.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(m *Manager) error {
		if ts == nil {
			return errors.New("token source cannot be nil")
		}
		m.tokenSource = ts
		return nil
	}
}

// WithMaxFileSize sets the largest file, in bytes, kept in a snapshot.
func WithMaxFileSize(n int64) Option {
	return func(m *Manager) error {
		if n <= 0 {
			return fmt.Errorf("max file size must be positive, got %d", n)
		}
		m.maxFileSize = n
		return nil
	}
}

// WithDepth limits clone history. Zero clones full history.
func WithDepth(depth int) Option {
	return func(m *Manager) error {
		if depth < 0 {
			return fmt.Errorf("depth cannot be negative, got %d", depth)
		}
		m.depth = depth
		return nil
	}
}

// Manager clones repositories into a cache directory and reads their files.
// Concurrent fetches of the same repository must be serialized by the
// caller; snapshot.Provider does this.
type Manager struct {
	dir         string
	tokenSource oauth2.TokenSource
	maxFileSize int64
	depth       int
}

var _ snapshot.Source = (*Manager)(nil)

// New returns a Manager caching clones under dir.
func New(dir string, opts ...Option) (*Manager, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	m := &Manager{
		dir:         dir,
		maxFileSize: DefaultMaxFileSize,
		depth:       1,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return m, nil
}

// Path returns where the clone of repo at branch lives.
func (m *Manager) Path(repo snapshot.RepoID, branch string) string {
	if branch == "" {
		branch = defaultBranchDir
	}
	return filepath.Join(m.dir, repo.Owner, repo.Name, url.PathEscape(branch))
}

// Fetch implements snapshot.Source. It reuses a clone already on disk and
// clones otherwise.
func (m *Manager) Fetch(ctx context.Context, repo snapshot.RepoID, branch string) ([]snapshot.File, error) {
	path := m.Path(repo, branch)
	log := clog.FromContext(ctx).With("repository", repo.String()).With("path", path)

	r, err := git.PlainOpen(path)
	switch {
	case err == nil:
		log.Info("Reusing cached clone")
	case errors.Is(err, git.ErrRepositoryNotExists):
		if r, err = m.clone(ctx, repo, branch, path); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("opening cached clone %s: %w", path, err)
	}

	return m.readHead(ctx, r)
}

func (m *Manager) clone(ctx context.Context, repo snapshot.RepoID, branch, path string) (*git.Repository, error) {
	remote := repoURL(repo)
	clog.FromContext(ctx).Infof("Cloning repository %s into %s", remote, path)

	auth, err := m.authForRemote()
	if err != nil {
		return nil, fmt.Errorf("getting token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	opts := &git.CloneOptions{
		URL:          remote,
		SingleBranch: true,
		Depth:        m.depth,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}
	if auth != nil {
		opts.Auth = auth
	}

	r, err := git.PlainCloneContext(ctx, path, true, opts)
	if err != nil {
		os.RemoveAll(path)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("cloning %s: %w", repo, ctx.Err())
		}
		return nil, fmt.Errorf("%w: cloning %s: %w", snapshot.ErrRepositoryNotFound, repo, err)
	}
	return r, nil
}

// readHead returns the text files of the HEAD commit in tree order.
func (m *Manager) readHead(ctx context.Context, r *git.Repository) ([]snapshot.File, error) {
	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	commit, err := r.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", head.Hash(), err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree: %w", err)
	}

	var files []snapshot.File
	skipped := 0
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.Size > m.maxFileSize || !f.Mode.IsFile() {
			skipped++
			return nil
		}
		content, err := f.Contents()
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.Name, err)
		}
		if !isText(content) {
			skipped++
			return nil
		}
		files = append(files, snapshot.File{Path: f.Name, Content: content})
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	clog.FromContext(ctx).With("files", len(files)).With("skipped", skipped).
		With("sha", head.Hash().String()).Info("Read repository files")
	return files, nil
}

func isText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

func (m *Manager) authForRemote() (*githttp.BasicAuth, error) {
	if m.tokenSource == nil {
		return nil, nil
	}
	token, err := m.tokenSource.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, nil
	}
	return &githttp.BasicAuth{
		Username: "unused-when-using-access-tokens",
		Password: token.AccessToken,
	}, nil
}
