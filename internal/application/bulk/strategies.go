package bulk

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	domain "github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	crmerrors "github.com/VenkataThrinadh/crmbulk/pkg/errors"
)

// strategy performs the remote calls of one operation. A returned error is a
// setup failure covering the whole batch; entity failures are recorded on
// the run instead.
type strategy func(ctx context.Context, run *batchRun) error

func defaultStrategies() map[domain.OperationKind]strategy {
	return map[domain.OperationKind]strategy{
		domain.OpUpdate:     updateEach,
		domain.OpDelete:     deleteEach,
		domain.OpDuplicate:  duplicateEach,
		domain.OpActivate:   setStatusEach,
		domain.OpDeactivate: setStatusEach,
		domain.OpArchive:    setStatusEach,
		domain.OpRestore:    setStatusEach,
		domain.OpEmail:      emailFanOut,
		domain.OpBulkUpdate: bulkUpdate,
		domain.OpBulkDelete: bulkDelete,
		domain.OpExport:     bulkExport,
	}
}

func updateEach(ctx context.Context, run *batchRun) error {
	fields := run.params.NonEmptyFields()
	msg := fmt.Sprintf("updated %s", joinKeys(fields))
	for _, ref := range run.selection {
		err := run.service.Update(ctx, ref.ID, fields)
		run.record(run.result(ctx, ref, err, msg))
	}
	return nil
}

func deleteEach(ctx context.Context, run *batchRun) error {
	for _, ref := range run.selection {
		err := run.service.Delete(ctx, ref.ID)
		run.record(run.result(ctx, ref, err, "deleted"))
	}
	return nil
}

func setStatusEach(ctx context.Context, run *batchRun) error {
	status := run.info.TargetStatus
	fields := map[string]interface{}{"status": status}
	msg := fmt.Sprintf("status set to %s", status)
	for _, ref := range run.selection {
		err := run.service.Update(ctx, ref.ID, fields)
		run.record(run.result(ctx, ref, err, msg))
	}
	return nil
}

func duplicateEach(ctx context.Context, run *batchRun) error {
	for _, ref := range run.selection {
		createdID, err := duplicateOne(ctx, run, ref)
		result := run.result(ctx, ref, err, "duplicated")
		if err == nil {
			result.CreatedID = createdID
			if createdID != "" {
				result.Message = fmt.Sprintf("duplicated as %s", createdID)
			}
		}
		run.record(result)
	}
	return nil
}

func duplicateOne(ctx context.Context, run *batchRun, ref domain.EntityRef) (string, error) {
	source := ref.Fields
	if len(source) == 0 {
		entity, err := run.service.Get(ctx, ref.ID)
		if err != nil {
			var remote *crmerrors.RemoteError
			if errors.As(err, &remote) && remote.NotFound() {
				return "", domain.NewNotFoundError(ref.ID, err)
			}
			return "", fmt.Errorf("load source: %w", err)
		}
		source = entity
	}
	created, err := run.service.Create(ctx, domain.StripIdentity(source))
	if err != nil {
		return "", err
	}
	return created.ID(), nil
}

// emailFanOut sends every message concurrently and waits for all of them to
// settle; one recipient's failure does not affect the others.
func emailFanOut(ctx context.Context, run *batchRun) error {
	results := make([]domain.OperationResult, len(run.selection))

	p := pool.New()
	if run.maxConcurrency > 0 {
		p = p.WithMaxGoroutines(run.maxConcurrency)
	}
	for i, ref := range run.selection {
		p.Go(func() {
			err := run.service.SendMessage(ctx, ref.ID, run.params.Email)
			results[i] = run.result(ctx, ref, err, "email sent")
			run.progress.advance(1)
		})
	}
	p.Wait()

	for _, result := range results {
		run.outcome.Add(result)
	}
	return nil
}

func bulkUpdate(ctx context.Context, run *batchRun) error {
	fields := run.params.NonEmptyFields()
	if err := run.service.BulkUpdate(ctx, run.selection.IDs(), fields); err != nil {
		return err
	}
	succeedAll(ctx, run, fmt.Sprintf("updated %s", joinKeys(fields)))
	return nil
}

func bulkDelete(ctx context.Context, run *batchRun) error {
	if err := run.service.BulkDelete(ctx, run.selection.IDs()); err != nil {
		return err
	}
	succeedAll(ctx, run, "deleted")
	return nil
}

func bulkExport(ctx context.Context, run *batchRun) error {
	filter := run.params.ExportFilterFor(run.selection)
	artifact, err := run.service.BulkExport(ctx, filter)
	if err != nil {
		return err
	}
	run.outcome.Export = artifact
	succeedAll(ctx, run, fmt.Sprintf("exported as %s", filter.Format))
	return nil
}

// succeedAll records one success per entity after a bulk call and jumps
// progress to 100%.
func succeedAll(ctx context.Context, run *batchRun, msg string) {
	for _, ref := range run.selection {
		run.outcome.Add(run.result(ctx, ref, nil, msg))
	}
	run.progress.complete()
}

func joinKeys(fields map[string]interface{}) string {
	keys := lo.Keys(fields)
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
