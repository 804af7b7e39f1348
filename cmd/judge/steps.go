/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/xleven/ai-hackathon-judge/agents/react"
)

const maxCellWidth = 200

// renderSteps writes the reasoning transcript as a markdown table.
func renderSteps(w io.Writer, steps []react.Entry) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			MaxWidth: 120,
			Behavior: tw.Behavior{TrimSpace: tw.Off},
		}),
		tablewriter.WithHeader([]string{"#", "Step", "Content"}),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)

	for i, e := range steps {
		content := e.Text
		if e.Kind == react.EntryAction {
			content = fmt.Sprintf("%s(%s)", e.Tool, e.Input)
		}
		if err := table.Append([]string{fmt.Sprint(i + 1), e.Kind.String(), cell(content)}); err != nil {
			return err
		}
	}
	return table.Render()
}

// cell flattens s onto one line and shortens it for a table cell.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxCellWidth {
		return string(r[:maxCellWidth-3]) + "..."
	}
	return s
}
