package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/opdoc"
)

func (a *app) clickCmd() *cobra.Command {
	var (
		id       int
		metadata string
	)

	cmd := &cobra.Command{
		Use:   "click FILE [X Y]",
		Short: "Click a document and print the host actions and the next frame",
		Long: "Click a document at surface coordinates, or with --id perform the\n" +
			"click of a click area or component without coordinates.",
		Args: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("id") {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			ctx, rec := a.start(doc)
			if _, err := a.frame(doc, ctx, rec); err != nil {
				return err
			}

			doc.AddIDActionListener(func(clicked int, meta string) {
				fmt.Fprintf(out, "id %d %s\n", clicked, meta)
			})
			doc.AddActionCallback(func(name string, payload any) {
				fmt.Fprintf(out, "action %s %v\n", name, payload)
			})
			doc.SetHapticEngine(opdoc.HapticFunc(func(effect int) {
				fmt.Fprintf(out, "haptic %d\n", effect)
			}))

			if cmd.Flags().Changed("id") {
				doc.PerformClick(ctx, id, metadata)
			} else {
				x, err := parseCoord(args[1])
				if err != nil {
					return err
				}
				y, err := parseCoord(args[2])
				if err != nil {
					return err
				}
				doc.OnClick(ctx, x, y)
			}

			if doc.NeedsRepaint() != opdoc.RepaintNow {
				return nil
			}
			next, err := a.frame(doc, ctx, rec)
			if err != nil {
				return err
			}
			printLines(out, next)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "perform the click of this area or component")
	cmd.Flags().StringVar(&metadata, "metadata", "", "metadata passed to id listeners with --id")
	a.surfaceFlags(cmd)
	return cmd
}

func parseCoord(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("bad coordinate %q", s)
	}
	return float32(v), nil
}
