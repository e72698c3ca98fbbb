package main

import (
	"context"

	"github.com/spf13/cobra"

	bulkapp "github.com/VenkataThrinadh/crmbulk/internal/application/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/application/columns"
	"github.com/VenkataThrinadh/crmbulk/internal/config"
	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/infrastructure/events"
	"github.com/VenkataThrinadh/crmbulk/internal/infrastructure/logging"
	"github.com/VenkataThrinadh/crmbulk/internal/infrastructure/rest"
	"github.com/VenkataThrinadh/crmbulk/internal/logger"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
	"github.com/VenkataThrinadh/crmbulk/internal/registry"
)

// AppContext bundles long-lived services created lazily on first use, so
// commands that need no backend never read the config.
type AppContext struct {
	flags *rootFlags

	cfg           *config.Config
	logger        ports.Logger
	client        *rest.Client
	preferences   ports.PreferencesStore
	history       ports.OutcomeStore
	correlationID string
}

func newAppContext(flags *rootFlags) *AppContext {
	return &AppContext{flags: flags}
}

// init loads config and builds the shared services once.
func (a *AppContext) init(cmd *cobra.Command) error {
	if a.cfg != nil {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, config.LoadOptions{Path: a.flags.configPath})
	if err != nil {
		return newCommandError("load configuration", configSource(a.flags.configPath), err, "Set api.base_url in the config file or export CRMBULK_BASE_URL.")
	}

	level := cfg.Log.Level
	if a.flags.verbose {
		level = "debug"
	}

	appLogger, err := logging.New(logging.Options{
		Writer:    cmd.ErrOrStderr(),
		Level:     level,
		Format:    cfg.Log.Format,
		Layer:     "application",
		Component: "cli",
	})
	if err != nil {
		return newCommandError("configure logging", "building the logger", err, "Use log.level debug|info|warn|error and log.format text|json.")
	}

	httpLevel := "warn"
	if a.flags.verbose {
		httpLevel = "debug"
	}
	httpLogger, err := logger.New(logger.Options{
		Level:         httpLevel,
		HumanReadable: cfg.Log.Format != "json",
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return newCommandError("configure logging", "building the HTTP logger", err, "Check the log configuration.")
	}

	stateDir, err := cfg.StateDir()
	if err != nil {
		return newCommandError("resolve state directory", "locating the home directory", err, "Set state.dir in the config file or export CRMBULK_STATE_DIR.")
	}
	prefs, err := registry.NewPreferencesStoreInDir(stateDir)
	if err != nil {
		return newCommandError("open preferences", stateDir, err, "Check that the state directory is writable.")
	}
	history, err := registry.NewHistoryStoreInDir(stateDir)
	if err != nil {
		return newCommandError("open history", stateDir, err, "Check that the state directory is writable.")
	}

	a.cfg = cfg
	a.logger = appLogger
	a.client = rest.NewClient(cfg.API.BaseURL,
		rest.WithTimeout(cfg.API.Timeout),
		rest.WithLogger(appLogger.With("layer", "infrastructure", "component", "rest_client")),
		rest.WithHTTPLogger(httpLogger),
		rest.WithUserAgent(cfg.API.UserAgent),
	)
	a.preferences = prefs
	a.history = history
	a.correlationID = ports.GenerateCorrelationID()
	return nil
}

// CommandContext returns the command context carrying the invocation's
// correlation ID and a logger tagged with component.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.correlationID != "" {
		ctx = ports.WithCorrelationID(ctx, a.correlationID)
	}
	if a.logger == nil {
		return ctx, logging.NewNoOpLogger()
	}
	return ctx, a.logger.With("component", component)
}

// Service returns the backend service for entity.
func (a *AppContext) Service(entity bulk.EntityType) ports.RemoteEntityService {
	return a.client.Entity(a.cfg.Entity(entity).Path)
}

// Columns returns the column visibility service seeded with configured defaults.
func (a *AppContext) Columns() *columns.Service {
	return columns.NewService(a.preferences, map[bulk.EntityType][]string{
		bulk.EntityCustomer: a.cfg.Entities.Customers.Columns,
		bulk.EntityProperty: a.cfg.Entities.Properties.Columns,
	})
}

// Runner builds a runner for entity. log receives both runner logs and bulk
// events, so callers can buffer it while the progress view owns the terminal.
func (a *AppContext) Runner(entity bulk.EntityType, log ports.Logger, publisher ports.EventPublisher, opts ...bulkapp.RunnerOption) *bulkapp.Runner {
	base := []bulkapp.RunnerOption{
		bulkapp.WithLogger(log),
		bulkapp.WithEvents(publisher),
		bulkapp.WithMaxConcurrency(a.cfg.Email.MaxConcurrency),
	}
	return bulkapp.NewRunner(entity, a.Service(entity), append(base, opts...)...)
}

// Publisher returns an event publisher writing through log.
func (a *AppContext) Publisher(log ports.Logger) *events.LoggingPublisher {
	return events.NewLoggingPublisher(log)
}

func configSource(path string) string {
	if path == "" {
		return "default config path"
	}
	return path
}
