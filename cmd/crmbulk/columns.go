package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VenkataThrinadh/crmbulk/internal/application/columns"
	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
)

func newColumnsCmd(app *AppContext) *cobra.Command {
	var entity string

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Manage which columns `crmbulk list` shows",
	}
	cmd.PersistentFlags().StringVarP(&entity, "entity", "e", "", "Entity type: customers or properties")
	_ = cmd.MarkPersistentFlagRequired("entity")

	change := func(use, short string, args cobra.PositionalArgs, apply func(context.Context, *columns.Service, bulk.EntityType, []string) ([]string, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				parsed, err := bulk.ParseEntityType(entity)
				if err != nil {
					return newCommandError("columns", "parsing --entity", err, "Use --entity customers or --entity properties.")
				}
				if err := app.init(cmd); err != nil {
					return err
				}
				ctx, _ := app.CommandContext(cmd, "columns")
				visible, err := apply(ctx, app.Columns(), parsed, args)
				if err != nil {
					return newCommandError("columns", "updating "+string(parsed)+" columns", err, "At least one column must stay visible.")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", parsed, strings.Join(visible, ", "))
				return nil
			},
		}
	}

	cmd.AddCommand(change("list", "Print the visible columns", cobra.NoArgs,
		func(ctx context.Context, svc *columns.Service, e bulk.EntityType, _ []string) ([]string, error) {
			return svc.Visible(ctx, e)
		}))
	cmd.AddCommand(change("show <column>...", "Make columns visible", cobra.MinimumNArgs(1),
		func(ctx context.Context, svc *columns.Service, e bulk.EntityType, cols []string) ([]string, error) {
			return svc.Show(ctx, e, cols...)
		}))
	cmd.AddCommand(change("hide <column>...", "Hide columns", cobra.MinimumNArgs(1),
		func(ctx context.Context, svc *columns.Service, e bulk.EntityType, cols []string) ([]string, error) {
			return svc.Hide(ctx, e, cols...)
		}))
	cmd.AddCommand(change("reset", "Restore the configured default columns", cobra.NoArgs,
		func(ctx context.Context, svc *columns.Service, e bulk.EntityType, _ []string) ([]string, error) {
			return svc.Reset(ctx, e)
		}))

	return cmd
}
