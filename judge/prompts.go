/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"github.com/xleven/ai-hackathon-judge/agents/promptbuilder"
)

// judgePrompt follows the zero-shot ReAct format: the model continues the
// text after the final "Thought:" and the loop appends its scratchpad there.
var judgePrompt = promptbuilder.MustNewPrompt(`You are the judge of the hackathon described below.
Here are the title, introduction and judging criteria of the hackathon:
{{hackathon}}

You have access to the following tools:
{{tool_strings}}

Use the following format:

Repos: the projects you will judge
Thought: you should always think about what to do
Action: the action to take, should be one of [{{tool_names}}]
Action Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Action Input/Observation can repeat N times)
Thought: I now have the final conclusion
Final Answer: the final conclusion

Projects will be submitted in the form of GitHub repositories, e.g. ` + "`user/repo`" + `.
Finish your judging with a score out of 100 and a detailed explanation attached.

Begin!

Repos: {{input}}
Thought:{{agent_scratchpad}}`)

// request binds one judging session into judgePrompt.
type request struct {
	hackathon Hackathon
	repos     string
}

var _ promptbuilder.Bindable = (*request)(nil)

func (r *request) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	p, err := p.BindXML("hackathon", r.hackathon)
	if err != nil {
		return nil, err
	}
	return p.BindText("input", r.repos)
}
