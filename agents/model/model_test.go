/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package model_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xleven/ai-hackathon-judge/agents/model"
)

func TestScript(t *testing.T) {
	m := model.Script("one", "two")
	ctx := context.Background()

	for _, want := range []string{"one", "two", "two"} {
		got, err := m.Complete(ctx, "ignored")
		if err != nil {
			t.Fatalf("Complete(): %v", err)
		}
		if got.Text != want {
			t.Errorf("Complete(): got = %q, wanted = %q", got.Text, want)
		}
	}
}

func TestScriptEmpty(t *testing.T) {
	_, err := model.Script().Complete(context.Background(), "")
	if !errors.Is(err, model.ErrEmptyCompletion) {
		t.Errorf("Complete(): got = %v, wanted = %v", err, model.ErrEmptyCompletion)
	}
}

func TestScriptCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := model.Script("x").Complete(ctx, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("Complete(): got = %v, wanted = %v", err, context.Canceled)
	}
}

type retryable struct{ model.Func }

func (retryable) IsRetryable(err error) bool { return err != nil }

func TestIsRetryable(t *testing.T) {
	err := errors.New("boom")
	if model.IsRetryable(model.Func(nil), err) {
		t.Error("IsRetryable(Func): got = true, wanted = false")
	}
	if !model.IsRetryable(retryable{}, err) {
		t.Error("IsRetryable(retryable): got = false, wanted = true")
	}
}
