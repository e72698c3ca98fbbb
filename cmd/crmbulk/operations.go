package main

import (
	"github.com/spf13/cobra"
)

func newOperationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List supported bulk operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writeOperationsTable(cmd.OutOrStdout())
			return nil
		},
	}
}
