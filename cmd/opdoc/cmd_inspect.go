package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/opdoc"
)

var namedTypes = []struct {
	name string
	typ  int
}{
	{"color", opdoc.NamedColor},
	{"float", opdoc.NamedFloat},
	{"integer", opdoc.NamedInt},
	{"long", opdoc.NamedLong},
	{"string", opdoc.NamedString},
}

func (a *app) inspectCmd() *cobra.Command {
	var (
		stats     bool
		hierarchy bool
	)

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the operations of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, doc.String())
			if desc := doc.ContentDescription(); desc != "" {
				fmt.Fprintf(out, "description: %s\n", desc)
			}

			if stats {
				counts := doc.Stats()
				for _, kind := range slices.Sorted(maps.Keys(counts)) {
					fmt.Fprintf(out, "%-24s %d\n", kind, counts[kind])
				}
				return nil
			}

			ctx, rec := a.start(doc)
			for _, n := range namedTypes {
				for _, name := range doc.NamedVariables(n.typ) {
					fmt.Fprintf(out, "named %s %s\n", n.name, name)
				}
			}

			if hierarchy {
				if _, err := a.frame(doc, ctx, rec); err != nil {
					return err
				}
				fmt.Fprint(out, doc.DisplayHierarchy())
				return nil
			}

			fmt.Fprint(out, doc.ToNestedString())
			return nil
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "count operations by kind instead")
	cmd.Flags().BoolVar(&hierarchy, "hierarchy", false, "paint one frame and print the laid out components")
	return cmd
}
