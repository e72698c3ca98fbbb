package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := newAppContext(flags)

	cmd := &cobra.Command{
		Use:           "crmbulk",
		Short:         "crmbulk runs bulk operations over CRM customers and properties",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to the config file (default ~/.crmbulk/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newRetryCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newOperationsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
