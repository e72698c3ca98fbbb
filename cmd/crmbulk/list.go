package main

import (
	"github.com/spf13/cobra"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

type listOptions struct {
	entity  string
	search  string
	status  string
	page    int
	limit   int
	columns []string
}

func newListCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers or properties with the visible columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.entity, "entity", "e", "", "Entity type: customers or properties")
	cmd.Flags().StringVar(&opts.search, "search", "", "Free text search")
	cmd.Flags().StringVar(&opts.status, "status", "", "Only list entities with this status")
	cmd.Flags().IntVar(&opts.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&opts.limit, "limit", 25, "Entities per page")
	cmd.Flags().StringSliceVar(&opts.columns, "columns", nil, "Columns to show instead of the saved preference")
	_ = cmd.MarkFlagRequired("entity")

	return cmd
}

func runList(cmd *cobra.Command, app *AppContext, opts *listOptions) error {
	entity, err := bulk.ParseEntityType(opts.entity)
	if err != nil {
		return newCommandError("list", "parsing --entity", err, "Use --entity customers or --entity properties.")
	}

	if err := app.init(cmd); err != nil {
		return err
	}
	ctx, _ := app.CommandContext(cmd, "list")

	columns := opts.columns
	if len(columns) == 0 {
		columns, err = app.Columns().Visible(ctx, entity)
		if err != nil {
			return newCommandError("list", "loading column preferences", err, "Run `crmbulk columns reset` to restore the defaults.")
		}
	}

	page, err := app.Service(entity).List(ctx, ports.ListFilter{
		Search: opts.search,
		Status: opts.status,
		Page:   opts.page,
		Limit:  opts.limit,
	})
	if err != nil {
		return newCommandError("list", "fetching "+string(entity), err, "Check that the backend is reachable and api.base_url is correct.")
	}

	writeEntityTable(cmd.OutOrStdout(), columns, page)
	return nil
}
