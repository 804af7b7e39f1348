/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xleven/ai-hackathon-judge/agents/promptbuilder"
)

func TestBuild(t *testing.T) {
	p := promptbuilder.MustNewPrompt("You are the judge of {{title}}.\nTools:\n{{tools}}\nThought:{{scratchpad}}")

	if _, err := p.Build(); err == nil {
		t.Fatal("Build() with unbound placeholders: got = nil, wanted error")
	}
	if diff := cmp.Diff([]string{"scratchpad", "title", "tools"}, p.Unbound()); diff != "" {
		t.Errorf("Unbound() (-want +got):\n%s", diff)
	}

	bound, err := p.BindText("title", "Streamlit {{not}} a binding")
	if err != nil {
		t.Fatalf("BindText() error = %v", err)
	}
	bound = promptbuilder.Must(bound.BindText("tools", "get_repo_info: Get files tree"))

	// The shared partially bound prompt can be re-bound on every iteration.
	for _, pad := range []string{"", " first\nObservation: x\nThought:"} {
		got, err := promptbuilder.Must(bound.BindText("scratchpad", pad)).Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		want := "You are the judge of Streamlit {{not}} a binding.\nTools:\nget_repo_info: Get files tree\nThought:" + pad
		if got != want {
			t.Errorf("Build(): got = %q, wanted = %q", got, want)
		}
	}

	if _, err := bound.BindText("title", "again"); err == nil {
		t.Error("re-binding title: got = nil, wanted error")
	}
	if _, err := bound.BindText("missing", "x"); err == nil {
		t.Error("binding unknown placeholder: got = nil, wanted error")
	}
	if _, err := p.Build(); err == nil {
		t.Error("original prompt must stay unbound: got = nil, wanted error")
	}
}

func TestBindXML(t *testing.T) {
	type info struct {
		XMLName xml.Name `xml:"hackathon"`
		Title   string   `xml:"title"`
	}
	p := promptbuilder.MustNewPrompt("Context:\n{{info}}")

	got, err := promptbuilder.Must(p.BindXML("info", info{Title: "<b>Hack & Win</b>"})).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "Context:\n<hackathon>\n  <title>&lt;b&gt;Hack &amp; Win&lt;/b&gt;</title>\n</hackathon>"
	if got != want {
		t.Errorf("Build(): got = %q, wanted = %q", got, want)
	}

	bad, err := p.BindXML("info", map[string]string{"a": "b"})
	if err != nil {
		t.Fatalf("BindXML() error = %v", err)
	}
	if _, err := bad.Build(); err == nil || !strings.Contains(err.Error(), "marshal XML") {
		t.Errorf("Build() with unmarshalable data: got = %v, wanted marshal error", err)
	}
}

func TestBindStringLiteral(t *testing.T) {
	p := promptbuilder.MustNewPrompt("Finish with {{closing}}")
	got, err := p.MustBindStringLiteral("closing", "a score out of 100").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if want := "Finish with a score out of 100"; got != want {
		t.Errorf("Build(): got = %q, wanted = %q", got, want)
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNewPrompt() with invalid template: got = no panic, wanted panic")
		}
	}()
	promptbuilder.MustNewPrompt("{{broken")
}

func TestNoop(t *testing.T) {
	p := promptbuilder.MustNewPrompt("static")
	got, err := promptbuilder.Noop{}.Bind(p)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if got != p {
		t.Error("Noop.Bind(): got = different prompt, wanted same prompt")
	}
}
