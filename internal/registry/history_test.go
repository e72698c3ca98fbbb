package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
)

func sampleOutcome() *bulk.BatchOutcome {
	outcome := bulk.NewBatchOutcome(bulk.OpUpdate, bulk.SelectionFromIDs("a", "b", "c"))
	outcome.Add(bulk.OperationResult{EntityID: "a", Success: true, Message: "updated status"})
	outcome.Add(bulk.OperationResult{EntityID: "b", Success: false, Message: "PUT /api/customers/b: status 500"})
	outcome.Add(bulk.OperationResult{EntityID: "c", Success: true, Message: "updated status"})
	outcome.Finish()
	return outcome
}

func TestHistoryLoadMissing(t *testing.T) {
	store, err := NewHistoryStoreInDir(t.TempDir())
	require.NoError(t, err)

	_, err = store.LoadLast(context.Background(), bulk.EntityCustomer)
	require.ErrorIs(t, err, ErrNoHistory)
}

func TestHistoryRoundTripKeepsFailedRefs(t *testing.T) {
	dir := t.TempDir()
	store, err := NewHistoryStoreInDir(dir)
	require.NoError(t, err)

	ctx := context.Background()
	params := bulk.OperationParams{Fields: map[string]interface{}{"status": "vip"}}
	require.NoError(t, store.SaveLast(ctx, bulk.EntityCustomer, sampleOutcome(), params))

	reopened, err := NewHistoryStore(filepath.Join(dir, HistoryFileName))
	require.NoError(t, err)
	record, err := reopened.LoadLast(ctx, bulk.EntityCustomer)
	require.NoError(t, err)

	assert.Equal(t, bulk.EntityCustomer, record.Entity)
	assert.Equal(t, bulk.OpUpdate, record.Outcome.Operation)
	assert.Equal(t, 2, record.Outcome.Successful)
	assert.Equal(t, 1, record.Outcome.Failed)
	assert.Equal(t, []string{"b"}, record.Outcome.FailedRefs().IDs())
	assert.Equal(t, "vip", record.Params.OperationParams().Fields["status"])
}

func TestHistoryKeepsOneRecordPerEntityType(t *testing.T) {
	store, err := NewHistoryStoreInDir(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.SaveLast(ctx, bulk.EntityCustomer, sampleOutcome(), bulk.OperationParams{}))

	deleted := bulk.NewBatchOutcome(bulk.OpDelete, bulk.SelectionFromIDs("p1"))
	deleted.Add(bulk.OperationResult{EntityID: "p1", Success: true, Message: "deleted"})
	require.NoError(t, store.SaveLast(ctx, bulk.EntityProperty, deleted, bulk.OperationParams{}))

	replaced := bulk.NewBatchOutcome(bulk.OpArchive, bulk.SelectionFromIDs("z"))
	replaced.Add(bulk.OperationResult{EntityID: "z", Success: true})
	require.NoError(t, store.SaveLast(ctx, bulk.EntityCustomer, replaced, bulk.OperationParams{}))

	customers, err := store.LoadLast(ctx, bulk.EntityCustomer)
	require.NoError(t, err)
	assert.Equal(t, bulk.OpArchive, customers.Outcome.Operation)

	properties, err := store.LoadLast(ctx, bulk.EntityProperty)
	require.NoError(t, err)
	assert.Equal(t, bulk.OpDelete, properties.Outcome.Operation)
}

func TestHistoryIgnoresNilOutcome(t *testing.T) {
	store, err := NewHistoryStoreInDir(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SaveLast(context.Background(), bulk.EntityCustomer, nil, bulk.OperationParams{}))
	_, err = store.LoadLast(context.Background(), bulk.EntityCustomer)
	require.ErrorIs(t, err, ErrNoHistory)
}
