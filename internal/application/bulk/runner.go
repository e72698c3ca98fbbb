// Package bulk runs one operation over a selection of CRM entities and
// reports per-entity outcomes.
package bulk

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/panics"

	domain "github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/infrastructure/logging"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

// CompletionFunc is invoked once per executed batch, after the outcome is
// final. It is not invoked when validation rejects the input.
type CompletionFunc func(op domain.OperationKind, outcome *domain.BatchOutcome)

// Runner executes bulk operations against one entity collection.
type Runner struct {
	entity         domain.EntityType
	service        ports.RemoteEntityService
	logger         ports.Logger
	events         ports.EventPublisher
	onProgress     ProgressFunc
	onComplete     CompletionFunc
	maxConcurrency int
	strategies     map[domain.OperationKind]strategy
}

// RunnerOption configures a Runner instance.
type RunnerOption func(*Runner)

// WithLogger injects a logger into the runner.
func WithLogger(logger ports.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEvents injects an event publisher.
func WithEvents(events ports.EventPublisher) RunnerOption {
	return func(r *Runner) {
		r.events = events
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) RunnerOption {
	return func(r *Runner) {
		r.onProgress = fn
	}
}

// WithCompletion registers a completion callback.
func WithCompletion(fn CompletionFunc) RunnerOption {
	return func(r *Runner) {
		r.onComplete = fn
	}
}

// WithMaxConcurrency bounds the email fan-out. Zero or less means one
// goroutine per recipient.
func WithMaxConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		r.maxConcurrency = n
	}
}

// NewRunner constructs a Runner for the given entity collection.
func NewRunner(entity domain.EntityType, service ports.RemoteEntityService, opts ...RunnerOption) *Runner {
	r := &Runner{
		entity:  entity,
		service: service,
		logger:  logging.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.strategies = defaultStrategies()
	return r
}

// Execute applies op to every entity in sel.
//
// Validation failures return (nil, err) before any remote call. Entity
// failures are recorded in the outcome and never returned. A failure outside
// the per-entity loop returns the outcome, holding a single batch-scoped
// failure, together with a BATCH_SETUP_ERROR.
func (r *Runner) Execute(ctx context.Context, sel domain.Selection, op domain.OperationKind, params domain.OperationParams) (*domain.BatchOutcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := r.logger.With("component", "runner", "entity_type", string(r.entity), "operation", string(op))

	run, err := r.prepare(ctx, sel, op, params)
	if err != nil {
		logger.Warn(ctx, "bulk operation rejected", "error", err)
		publishEvent(ctx, r.events, logger, ports.EventBatchRejected, map[string]interface{}{
			"entity_type": r.entity,
			"operation":   op,
			"error":       err.Error(),
		})
		return nil, err
	}
	run.logger = logger

	logger.Info(ctx, "executing bulk operation", "items", len(sel), "strategy", string(run.info.Strategy))
	publishEvent(ctx, r.events, logger, ports.EventBatchStarted, map[string]interface{}{
		"entity_type": r.entity,
		"operation":   op,
		"items":       len(sel),
		"strategy":    run.info.Strategy,
	})

	run.progress.start()
	setupErr := r.dispatch(ctx, run)
	run.outcome.Finish()

	if setupErr != nil {
		run.outcome.FailBatch(fmt.Sprintf("bulk operation failed: %v", setupErr))
		run.progress.complete()
		domainErr := domain.NewBatchSetupError(op, setupErr)
		logger.Error(ctx, "bulk operation failed", "error", setupErr, "items", len(sel))
		publishEvent(ctx, r.events, logger, ports.EventBatchFailed, map[string]interface{}{
			"entity_type": r.entity,
			"operation":   op,
			"items":       len(sel),
			"error":       setupErr.Error(),
		})
		r.complete(op, run.outcome)
		return run.outcome, domainErr
	}

	logger.Info(ctx, "bulk operation complete",
		"successful", run.outcome.Successful,
		"failed", run.outcome.Failed,
		"duration_ms", run.outcome.Duration.Milliseconds(),
	)
	publishEvent(ctx, r.events, logger, ports.EventBatchCompleted, map[string]interface{}{
		"entity_type": r.entity,
		"operation":   op,
		"successful":  run.outcome.Successful,
		"failed":      run.outcome.Failed,
		"duration":    run.outcome.Duration.Milliseconds(),
	})
	r.complete(op, run.outcome)
	return run.outcome, nil
}

func (r *Runner) prepare(ctx context.Context, sel domain.Selection, op domain.OperationKind, params domain.OperationParams) (*batchRun, error) {
	if op == "" {
		return nil, domain.ErrNoOperation
	}
	info, ok := op.Info()
	if !ok {
		return nil, domain.ErrUnknownOperation.WithContext(map[string]interface{}{"operation": string(op)})
	}
	if _, ok := r.strategies[op]; !ok {
		return nil, domain.ErrUnknownOperation.WithContext(map[string]interface{}{"operation": string(op)})
	}
	if len(sel) == 0 {
		return nil, domain.ErrNoItems
	}
	if err := params.Validate(op); err != nil {
		return nil, err
	}
	if r.service == nil {
		return nil, &domain.DomainError{Code: domain.ErrCodeInternal, Message: "remote entity service is nil"}
	}

	return &batchRun{
		entity:         r.entity,
		service:        r.service,
		events:         r.events,
		info:           info,
		selection:      sel,
		params:         params,
		outcome:        domain.NewBatchOutcome(op, sel),
		progress:       newProgressTracker(op, len(sel), r.onProgress),
		maxConcurrency: r.maxConcurrency,
	}, nil
}

// dispatch runs the strategy, converting an escaped panic into a setup error.
func (r *Runner) dispatch(ctx context.Context, run *batchRun) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicError(rec)
		}
	}()
	return r.strategies[run.info.Kind](ctx, run)
}

// panicError formats a recovered value. Panics re-raised by a conc pool
// arrive wrapped with their stack, which stays out of the message.
func panicError(rec interface{}) error {
	if recovered, ok := rec.(*panics.Recovered); ok {
		rec = recovered.Value
	}
	return fmt.Errorf("%v", rec)
}

func (r *Runner) complete(op domain.OperationKind, outcome *domain.BatchOutcome) {
	if r.onComplete != nil {
		r.onComplete(op, outcome)
	}
}

// batchRun is the state owned by a single Execute call.
type batchRun struct {
	entity         domain.EntityType
	service        ports.RemoteEntityService
	logger         ports.Logger
	events         ports.EventPublisher
	info           domain.OperationInfo
	selection      domain.Selection
	params         domain.OperationParams
	outcome        *domain.BatchOutcome
	progress       *progressTracker
	maxConcurrency int

	mu sync.Mutex
}

// result converts a remote call's error into an entity result.
func (b *batchRun) result(ctx context.Context, ref domain.EntityRef, err error, successMsg string) domain.OperationResult {
	if err != nil {
		entityErr := domain.NewEntityOperationError(b.info.Kind, ref.ID, err)
		b.logger.Warn(ctx, "entity operation failed", "entity_id", ref.ID, "error", entityErr)
		publishEvent(ctx, b.events, b.logger, ports.EventEntityFailed, map[string]interface{}{
			"entity_type": b.entity,
			"operation":   b.info.Kind,
			"entity_id":   ref.ID,
			"error":       err.Error(),
		})
		return domain.OperationResult{EntityID: ref.ID, Success: false, Message: err.Error(), Scope: domain.ScopeEntity}
	}
	b.logger.Debug(ctx, "entity operation succeeded", "entity_id", ref.ID)
	publishEvent(ctx, b.events, b.logger, ports.EventEntitySucceeded, map[string]interface{}{
		"entity_type": b.entity,
		"operation":   b.info.Kind,
		"entity_id":   ref.ID,
	})
	return domain.OperationResult{EntityID: ref.ID, Success: true, Message: successMsg, Scope: domain.ScopeEntity}
}

// record adds a result and advances progress by one.
func (b *batchRun) record(result domain.OperationResult) {
	b.mu.Lock()
	b.outcome.Add(result)
	b.mu.Unlock()
	b.progress.advance(1)
}
