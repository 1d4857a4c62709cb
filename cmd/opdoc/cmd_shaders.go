package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/opdoc/internal/shaderpolicy"
)

func (a *app) shadersCmd() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "shaders FILE",
		Short: "Check the shaders of a document against a CEL policy",
		Long: "Check the shaders of a document against a CEL policy.\n\n" +
			"The policy sees source (string), size (int) and uniforms (list of\n" +
			"string) and must return a bool.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("policy") {
				policy = a.cfg.ShaderPolicy
			}
			p, err := shaderpolicy.New(policy)
			if err != nil {
				return err
			}

			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			ctx, _ := a.start(doc)

			n, err := doc.CheckShaders(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rejected %d\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "CEL expression (defaults to the config shader_policy)")
	return cmd
}
