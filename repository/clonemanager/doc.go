/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package clonemanager is a snapshot.Source backed by git clones kept in a
// local cache directory.
//
// Each repository is cloned once into <cache>/<owner>/<name>/<branch> and
// reused on later runs without touching the network.
//
//	mgr, err := clonemanager.New("repos", clonemanager.WithTokenSource(ts))
//	if err != nil {
//		return err
//	}
//	provider := snapshot.NewProvider(mgr, "main")
package clonemanager
