package export

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderTable renders the cue list as a human-readable table for terminal
// inspection.
func RenderTable(cues []MouthCue) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"START", "END", "SHAPE"})
	for _, c := range cues {
		tw.AppendRow(table.Row{
			fmt.Sprintf("%.2f", c.Start),
			fmt.Sprintf("%.2f", c.End),
			c.Value,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
