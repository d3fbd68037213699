package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/biolimbo/lip-sync-engine/internal/viseme"
)

func newShapesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shapes",
		Short: "Print the shape inventory and phone-to-shape mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			basic := viseme.BasicShapes()
			fmt.Fprintf(out, "shape set %q:", basic.Name())
			for _, s := range basic.Shapes() {
				fmt.Fprintf(out, " %s", s)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out)

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"PHONE", "SHAPE"})
			for _, p := range viseme.Phones() {
				tw.AppendRow(table.Row{p.String(), viseme.ShapeForPhone(p).String()})
			}
			fmt.Fprintln(out, tw.Render())
			return nil
		},
	}
}
