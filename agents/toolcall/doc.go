/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package toolcall defines the capabilities an agent may invoke by name.
//
// Tools are text-in/text-out: the agent loop extracts a tool name and a raw
// input string from model output, looks the tool up in a Registry and feeds
// the returned string back to the model as an observation. The Registry is a
// static list built once at startup and rendered verbatim into the prompt so
// the model knows what it may call:
//
//	reg, err := toolcall.NewRegistry(
//		toolcall.Tool{
//			Name:        "get_repo_info",
//			Description: "Get files tree and README of the repo",
//			Invoke:      summarize,
//		},
//	)
//	fmt.Println(reg.Describe()) // get_repo_info: Get files tree and README of the repo
package toolcall
