// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/ades"
)

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func newLevelsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List supported conformance levels and what each adds",
		Args:  cobra.NoArgs,
		RunE: track(func(cmd *cobra.Command, _ []string) error {
			defaultLevel, _ := a.cfg.SigningLevel()

			table := tablewriter.NewTable(cmd.OutOrStdout(),
				tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
			)
			table.Header([]string{"Level", "Timestamp", "Certificates & CRLs", "Archival Timestamp", "Default"})

			var rows [][]string
			for _, l := range ades.Levels() {
				rows = append(rows, []string{
					l.String(),
					yesNo(l.RequiresTimestamp()),
					yesNo(l >= ades.LevelBLT),
					yesNo(l == ades.LevelBLTA),
					yesNo(l == defaultLevel),
				})
			}

			table.Bulk(rows)
			return table.Render()
		}),
	}
}
