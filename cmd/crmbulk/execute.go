package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	bulkapp "github.com/VenkataThrinadh/crmbulk/internal/application/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/infrastructure/logging"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
	"github.com/VenkataThrinadh/crmbulk/internal/tui"
)

type batchRequest struct {
	entity    bulk.EntityType
	operation bulk.OperationKind
	selection bulk.Selection
	params    bulk.OperationParams
	yes       bool
	plain     bool
	output    string
	// command names the calling subcommand in error messages.
	command string
}

// executeBatch confirms, runs and reports one batch. It returns a non-nil
// error when the input was rejected, setup failed, or any entity failed.
func executeBatch(cmd *cobra.Command, app *AppContext, req batchRequest) error {
	ctx, log := app.CommandContext(cmd, "runner")
	out := cmd.OutOrStdout()

	if info, ok := req.operation.Info(); ok && info.Destructive && !req.yes && len(req.selection) > 0 {
		confirmed, err := confirmDestructive(cmd, fmt.Sprintf("%s %d %s?", info.Label, len(req.selection), req.entity))
		if err != nil {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	var (
		outcome *bulk.BatchOutcome
		err     error
	)
	if !req.plain && isTerminal(out) {
		outcome, err = runInteractive(ctx, cmd, app, log, req)
	} else {
		outcome, err = runPlain(ctx, app, log, req)
		if outcome != nil {
			writeOutcomeReport(out, req.entity, outcome)
		}
	}

	if outcome == nil {
		return newCommandError(req.command, fmt.Sprintf("running %s on %s", req.operation, req.entity), err, rejectionSuggestion(err))
	}

	if saveErr := app.history.SaveLast(ctx, req.entity, outcome, req.params); saveErr != nil {
		log.Warn(ctx, "failed to record outcome", "error", saveErr)
	}

	if outcome.Export != nil {
		path, size, writeErr := writeArtifact(req.output, outcome.Export)
		if writeErr != nil {
			return newCommandError(req.command, "writing the export", writeErr, "Check that the --output path is writable.")
		}
		_, _ = fmt.Fprintf(out, "Wrote %s (%s)\n", path, humanize.Bytes(uint64(size)))
	}

	if err != nil {
		return newCommandError(req.command, fmt.Sprintf("running %s on %s", req.operation, req.entity), err, "Check that the backend is reachable, then run `crmbulk retry`.")
	}
	if outcome.Failed > 0 {
		return &batchFailedError{failed: outcome.Failed, total: outcome.Total()}
	}
	return nil
}

func runPlain(ctx context.Context, app *AppContext, log ports.Logger, req batchRequest) (*bulk.BatchOutcome, error) {
	runner := app.Runner(req.entity, log, app.Publisher(log))
	return runner.Execute(ctx, req.selection, req.operation, req.params)
}

// runInteractive shows the progress view while the batch runs. Logs are held
// back until the view exits so they do not tear the screen.
func runInteractive(ctx context.Context, cmd *cobra.Command, app *AppContext, log ports.Logger, req batchRequest) (*bulk.BatchOutcome, error) {
	buffer := logging.NewEventBuffer(0)
	held := logging.NewBufferedLogger(buffer)
	defer buffer.Flush(log)

	program := tea.NewProgram(
		tui.NewModel(req.entity, req.operation, len(req.selection)),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithInput(cmd.InOrStdin()),
	)

	publisher := app.Publisher(held)
	forward := func(_ context.Context, event ports.DomainEvent) error {
		program.Send(entityResultMsg(event))
		return nil
	}
	for _, eventType := range []string{ports.EventEntitySucceeded, ports.EventEntityFailed} {
		sub, err := publisher.Subscribe(eventType, forward)
		if err != nil {
			return nil, err
		}
		defer sub.Unsubscribe()
	}

	runner := app.Runner(req.entity, held, publisher, bulkapp.WithProgress(func(p bulkapp.Progress) {
		program.Send(tui.ProgressMsg{Processed: p.Processed, Total: p.Total, Percent: p.Percent})
	}))

	var (
		final      tea.Model
		programErr error
	)
	done := make(chan struct{})
	go func() {
		final, programErr = program.Run()
		close(done)
	}()

	outcome, err := runner.Execute(ctx, req.selection, req.operation, req.params)
	program.Send(tui.OutcomeMsg{Outcome: outcome, Err: err})
	<-done

	view, _ := final.(tui.Model)
	if outcome != nil && (programErr != nil || view.Cancelled()) {
		if programErr != nil {
			log.Warn(ctx, "progress view failed", "error", programErr)
		}
		writeOutcomeReport(cmd.OutOrStdout(), req.entity, outcome)
	}
	return outcome, err
}

func entityResultMsg(event ports.DomainEvent) tui.EntityResultMsg {
	msg := tui.EntityResultMsg{Success: event.EventType() == ports.EventEntitySucceeded}
	payload, _ := event.Payload().(map[string]interface{})
	if id, ok := payload["entity_id"].(string); ok {
		msg.EntityID = id
	}
	if reason, ok := payload["error"].(string); ok {
		msg.Message = reason
	}
	return msg
}

func writeArtifact(output string, artifact *bulk.Artifact) (string, int, error) {
	path := output
	if path == "" {
		path = filepath.Base(artifact.Filename)
	}
	if path == "" || path == "." {
		path = "export.bin"
	}
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", 0, err
	}
	return path, len(artifact.Data), nil
}

func rejectionSuggestion(err error) string {
	switch {
	case err == nil:
		return "Check the command arguments."
	case bulk.IsValidation(err):
		return "Run `crmbulk operations` to list operations. update needs --set, email needs --subject and --message, export accepts --format csv|xlsx|json."
	default:
		return "Check the configuration and try again."
	}
}
