/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/xleven/ai-hackathon-judge/agents/toolcall"
	"github.com/xleven/ai-hackathon-judge/repository/snapshot"
)

// Tool names as the model sees them.
const (
	FileContentToolName = "get_file_content"
	RepoInfoToolName    = "get_repo_info"
)

// NotFound is returned by the file lookup when no file has the path.
const NotFound = "Not found"

const readmePath = "README.md"

// Loader loads repository snapshots. *snapshot.Provider implements it.
type Loader interface {
	Load(ctx context.Context, repo snapshot.RepoID, branch string) (*snapshot.Snapshot, error)
}

// repoTools serves the judge's tools from one loader, branch and budget.
type repoTools struct {
	loader Loader
	branch string
	budget int
}

func (t *repoTools) tools() []toolcall.Tool {
	return []toolcall.Tool{{
		Name:        RepoInfoToolName,
		Description: "Get files tree and README of the repo. Input be like `user/repo`",
		Invoke:      t.repoInfo,
	}, {
		Name:        FileContentToolName,
		Description: "Get content of specific file in repo. Input be like `user/repo:file_path`",
		Invoke:      t.fileContent,
	}}
}

// fileContent answers "<owner>/<name>:<path>" with the file's content.
// Malformed input is explained to the model rather than failing.
func (t *repoTools) fileContent(ctx context.Context, input string) (string, error) {
	repo, path, ok := strings.Cut(strings.TrimSpace(input), ":")
	if !ok || strings.TrimSpace(path) == "" {
		return malformedFileInput(input, "expected <owner>/<name>:<file_path>"), nil
	}
	id, err := snapshot.ParseRepoID(repo)
	if err != nil {
		return malformedFileInput(input, err.Error()), nil
	}
	return t.lookup(ctx, id, strings.TrimSpace(path))
}

func (t *repoTools) lookup(ctx context.Context, id snapshot.RepoID, path string) (string, error) {
	snap, err := t.loader.Load(ctx, id, t.branch)
	if err != nil {
		return "", err
	}
	f, ok := snap.Lookup(path)
	if !ok {
		return NotFound, nil
	}
	return toolcall.Truncate(f.Content, t.budget), nil
}

// repoInfo reports the repository's file tree, without hidden files and
// test directories, followed by its README. The whole report is cut to the
// budget, so a large tree can crowd out the README.
func (t *repoTools) repoInfo(ctx context.Context, input string) (string, error) {
	id, err := snapshot.ParseRepoID(strings.Trim(input, " \t\r\n`'\""))
	if err != nil {
		return fmt.Sprintf("Invalid input %q: %v. Input should be a repository like `user/repo`.", input, err), nil
	}
	snap, err := t.loader.Load(ctx, id, t.branch)
	if err != nil {
		return "", err
	}
	tree := snap.Paths(snapshot.Hidden, snapshot.TestDir)

	readme, err := t.lookup(ctx, id, readmePath)
	if err != nil {
		return "", err
	}

	info := fmt.Sprintf("Repo: %s\n\nFiles:\n%s\n\nReadme:\n%s", id, strings.Join(tree, "\n"), readme)
	return toolcall.Truncate(info, t.budget), nil
}

func malformedFileInput(input, reason string) string {
	return fmt.Sprintf("Invalid input %q: %s. Input should be like `user/repo:file_path`, e.g. `octocat/Hello-World:README.md`.", input, reason)
}
