package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rushteam/carmatch/config"
)

func newPipelineCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Inspect pipeline configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a pipeline file only uses registered node types and builds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.pipelineFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no pipeline file given")
			}
			p, scope, err := loadPipeline(path)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d nodes, cache scope %q)\n", path, len(p.Nodes), scope)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List registered node types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, t := range config.SupportedTypes() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t); err != nil {
					return err
				}
			}
			return nil
		},
	})
	return cmd
}
