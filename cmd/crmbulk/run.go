package main

import (
	"github.com/spf13/cobra"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
)

type runOptions struct {
	entity    string
	operation string
	ids       []string
	idsFile   string
	set       []string
	subject   string
	message   string
	format    string
	fields    []string
	output    string
	yes       bool
	plain     bool
}

func newRunCmd(app *AppContext) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a bulk operation over selected entities",
		Long: `Run one operation over the selected customers or properties.

Each entity gets exactly one attempt. Failures are reported per entity and
can be retried with "crmbulk retry".`,
		Example: `  crmbulk run --entity customers --op activate --ids c1,c2,c3
  crmbulk run --entity properties --op update --ids-file ids.txt --set status=sold
  crmbulk run --entity customers --op email --ids c1 --subject Hi --message Hello
  crmbulk run --entity properties --op export --ids p1,p2 --format json --output props.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.entity, "entity", "e", "", "Entity type: customers or properties")
	cmd.Flags().StringVarP(&opts.operation, "op", "o", "", "Operation to run (see `crmbulk operations`)")
	cmd.Flags().StringSliceVar(&opts.ids, "ids", nil, "Comma separated entity ids")
	cmd.Flags().StringVar(&opts.idsFile, "ids-file", "", "File with one id per line, - for stdin")
	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "Field assignment key=value for update and bulk_update (repeatable)")
	cmd.Flags().StringVar(&opts.subject, "subject", "", "Email subject")
	cmd.Flags().StringVar(&opts.message, "message", "", "Email body")
	cmd.Flags().StringVar(&opts.format, "format", "", "Export format: csv, xlsx or json (default csv)")
	cmd.Flags().StringSliceVar(&opts.fields, "fields", nil, "Columns to include in the export")
	cmd.Flags().StringVar(&opts.output, "output", "", "Export destination (default: file name sent by the backend)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt for destructive operations")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print a plain report instead of the progress view")

	_ = cmd.MarkFlagRequired("entity")
	_ = cmd.MarkFlagRequired("op")

	return cmd
}

func runBatch(cmd *cobra.Command, app *AppContext, opts *runOptions) error {
	entity, err := bulk.ParseEntityType(opts.entity)
	if err != nil {
		return newCommandError("run", "parsing --entity", err, "Use --entity customers or --entity properties.")
	}
	op, err := bulk.ParseOperationKind(opts.operation)
	if err != nil {
		return newCommandError("run", "parsing --op", err, "Run `crmbulk operations` to list operations.")
	}

	selection, err := readSelection(cmd.InOrStdin(), opts.ids, opts.idsFile)
	if err != nil {
		return newCommandError("run", "reading the selection", err, "Pass ids with --ids or --ids-file.")
	}

	fields, err := parseAssignments(opts.set)
	if err != nil {
		return newCommandError("run", "parsing --set", err, "Use --set key=value, one per field.")
	}

	if err := app.init(cmd); err != nil {
		return err
	}

	return executeBatch(cmd, app, batchRequest{
		entity:    entity,
		operation: op,
		selection: selection,
		params: bulk.OperationParams{
			Fields:       fields,
			Email:        bulk.Message{Subject: opts.subject, Message: opts.message},
			ExportFormat: opts.format,
			ExportFields: opts.fields,
		},
		yes:     opts.yes,
		plain:   opts.plain,
		output:  opts.output,
		command: "run",
	})
}
