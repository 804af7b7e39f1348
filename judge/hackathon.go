/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Hackathon describes the event submissions are judged against.
type Hackathon struct {
	XMLName         xml.Name `xml:"hackathon" yaml:"-"`
	Title           string   `xml:"title" yaml:"title"`
	Introduction    string   `xml:"introduction" yaml:"introduction"`
	JudgingCriteria string   `xml:"judging_criteria" yaml:"judging"`
}

// Validate reports missing fields.
func (h Hackathon) Validate() error {
	var errs []error
	if strings.TrimSpace(h.Title) == "" {
		errs = append(errs, errors.New("hackathon title is required"))
	}
	if strings.TrimSpace(h.Introduction) == "" {
		errs = append(errs, errors.New("hackathon introduction is required"))
	}
	if strings.TrimSpace(h.JudgingCriteria) == "" {
		errs = append(errs, errors.New("hackathon judging criteria are required"))
	}
	return errors.Join(errs...)
}

// ParseHackathon reads a YAML hackathon description. Fields left out keep
// the values of DefaultHackathon.
func ParseHackathon(r io.Reader) (Hackathon, error) {
	h := DefaultHackathon()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&h); err != nil && !errors.Is(err, io.EOF) {
		return Hackathon{}, fmt.Errorf("decoding hackathon: %w", err)
	}
	return h, h.Validate()
}

// LoadHackathon reads a YAML hackathon description from path.
func LoadHackathon(path string) (Hackathon, error) {
	f, err := os.Open(path)
	if err != nil {
		return Hackathon{}, fmt.Errorf("opening hackathon file: %w", err)
	}
	defer f.Close()
	return ParseHackathon(f)
}

// DefaultHackathon is the Streamlit LLM Hackathon the judge was first built
// for.
func DefaultHackathon() Hackathon {
	return Hackathon{
		Title:           defaultTitle,
		Introduction:    defaultIntroduction,
		JudgingCriteria: defaultJudging,
	}
}

const defaultTitle = "Streamlit LLM Hackathon"

const defaultIntroduction = `Build an innovative LLM-based Streamlit app that incorporates at least one of the following LLM technologies: LangChain, AssemblyAI, Weaviate, LlamaIndex, or Clarifai.
There are five "Most Innovative Use" prize categories, one for each partner listed above.
In each category, there will be two lucky app winners. You can submit your app alone, or as a team of two.
Winners will be announced by October 5.
Join the #llm-hackathon channel on Discord to get inspiration, ask questions, and participate in mini-giveaways.
Representatives from all partners will be available to guide you as you build your LLM-based apps.`

const defaultJudging = `1. Inventive
Your app offers new features not found in other Streamlit apps. The more unique, the better.
2. Error-Free
Your app doesn't produce any errors during testing.
3. Public GitHub Repository
Your app's source code is public, using secrets management to protect your API keys and credentials.
4. Hosted on Community Cloud
Your app must be publicly accessible on Streamlit's Community Cloud.
5. Tools Used
Your app uses at least one partner: LangChain, LlamaIndex, Weaviate, AssemblyAI, or Clarifai.
6. LLM Pain Points
You'll get bonus points if your app addresses common LLM pain points like transparency, trust, accuracy, privacy, cost reduction, or ethics.`
