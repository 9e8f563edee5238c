// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package revocation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderTable renders collected evidence as a markdown table.
//
// Parameters:
//   - evidence: Evidence in collection order
//
// Returns:
//   - string: Markdown table with one row per CRL
func RenderTable(evidence []Evidence) string {
	if len(evidence) == 0 {
		return "No CRL evidence collected"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Distribution Point", "Size", "Base64 Length"})

	rows := make([][]string, 0, len(evidence))
	for i, e := range evidence {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			e.URL,
			fmt.Sprintf("%d bytes", e.Size),
			fmt.Sprintf("%d", len(e.Data)),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToJSON converts evidence into an indented JSON document.
func ToJSON(evidence []Evidence) ([]byte, error) {
	type evidenceReport struct {
		Timestamp string     `json:"timestamp"`
		Count     int        `json:"count"`
		CRLs      []Evidence `json:"crls"`
	}

	if evidence == nil {
		evidence = []Evidence{}
	}

	return json.MarshalIndent(evidenceReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Count:     len(evidence),
		CRLs:      evidence,
	}, "", "  ")
}
