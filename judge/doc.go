/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge scores hackathon submissions with a language model.
//
// The model is given the hackathon's introduction and judging criteria and
// two tools for exploring the submitted GitHub repository:
//
//   - get_repo_info returns the file tree and README of a repository.
//   - get_file_content returns one file, addressed as owner/name:path.
//
// It explores until it can give a final answer, which is expected to hold a
// score out of 100 and an explanation. The answer is returned verbatim.
//
//	provider := snapshot.NewProvider(source, "main")
//	j, err := judge.New(model, provider, judge.WithMaxIterations(10))
//	if err != nil {
//		return err
//	}
//	verdict, err := j.Judge(ctx, judge.DefaultHackathon(), "octocat/Hello-World")
package judge
