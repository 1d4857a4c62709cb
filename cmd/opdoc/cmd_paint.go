package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

func (a *app) paintCmd() *cobra.Command {
	var frames int

	cmd := &cobra.Command{
		Use:   "paint FILE",
		Short: "Run frames and print the draw commands of the last one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			if frames <= 0 {
				frames = a.cfg.Frames
			}

			ctx, rec := a.start(doc)
			var last []string
			for i := range frames {
				last, err = a.frame(doc, ctx, rec)
				if err != nil {
					return fmt.Errorf("frame %d: %w", i+1, err)
				}
				a.logger.Debug("frame painted", "frame", i+1, "ops", doc.OpsPerFrame(), "commands", len(last))
			}

			out := cmd.OutOrStdout()
			printLines(out, last)
			fmt.Fprintf(out, "repaint: %s\n", repaintString(doc.NeedsRepaint()))

			diags := doc.Diagnostics()
			for _, kind := range slices.Sorted(maps.Keys(diags)) {
				fmt.Fprintf(out, "diagnostic %s %d\n", kind, diags[kind])
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&frames, "frames", "n", 0, "frames to run (defaults to the config)")
	a.surfaceFlags(cmd)
	return cmd
}
