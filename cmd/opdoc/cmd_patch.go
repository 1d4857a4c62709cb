package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) patchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch FILE DELTA",
		Short: "Apply the data operations of DELTA to a running document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			delta, err := a.open(args[1])
			if err != nil {
				return err
			}

			ctx, rec := a.start(doc)
			if _, err := a.frame(doc, ctx, rec); err != nil {
				return err
			}

			n := doc.ApplyUpdate(delta)
			a.logger.Info("update applied", "document", doc.ID(), "updated", n)

			next, err := a.frame(doc, ctx, rec)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "patched %d\n", n)
			printLines(out, next)
			return nil
		},
	}

	a.surfaceFlags(cmd)
	return cmd
}
