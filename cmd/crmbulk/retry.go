package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/registry"
)

type retryOptions struct {
	entity string
	output string
	yes    bool
	plain  bool
}

func newRetryCmd(app *AppContext) *cobra.Command {
	opts := &retryOptions{}

	cmd := &cobra.Command{
		Use:   "retry",
		Short: "Re-run the last operation on the entities that failed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRetry(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.entity, "entity", "e", "", "Entity type: customers or properties")
	cmd.Flags().StringVar(&opts.output, "output", "", "Export destination when retrying an export")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt for destructive operations")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print a plain report instead of the progress view")
	_ = cmd.MarkFlagRequired("entity")

	return cmd
}

func runRetry(cmd *cobra.Command, app *AppContext, opts *retryOptions) error {
	entity, err := bulk.ParseEntityType(opts.entity)
	if err != nil {
		return newCommandError("retry", "parsing --entity", err, "Use --entity customers or --entity properties.")
	}

	if err := app.init(cmd); err != nil {
		return err
	}

	ctx, _ := app.CommandContext(cmd, "retry")
	last, err := app.history.LoadLast(ctx, entity)
	if errors.Is(err, registry.ErrNoHistory) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No recorded run for %s.\n", entity)
		return nil
	}
	if err != nil {
		return newCommandError("retry", "loading the last outcome", err, "Check that the state directory is readable.")
	}

	refs := last.Outcome.FailedRefs()
	if len(refs) == 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Nothing to retry: the last %s on %s had no failures.\n", last.Outcome.Operation, entity)
		return nil
	}

	return executeBatch(cmd, app, batchRequest{
		entity:    entity,
		operation: last.Outcome.Operation,
		selection: refs,
		params:    last.Params.OperationParams(),
		yes:       opts.yes,
		plain:     opts.plain,
		output:    opts.output,
		command:   "retry",
	})
}
