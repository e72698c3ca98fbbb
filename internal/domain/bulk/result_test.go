package bulk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBatchOutcomeCounts(t *testing.T) {
	t.Parallel()

	outcome := NewBatchOutcome(OpDelete, SelectionFromIDs("a", "b", "c"))
	outcome.Add(OperationResult{EntityID: "a", Success: true})
	outcome.Add(OperationResult{EntityID: "b", Success: false, Message: "locked"})
	outcome.Add(OperationResult{EntityID: "c", Success: true})

	require.Equal(t, 2, outcome.Successful)
	require.Equal(t, 1, outcome.Failed)
	require.Equal(t, outcome.Total(), outcome.Successful+outcome.Failed)
	require.Equal(t, ScopeEntity, outcome.Results[1].Scope)
	require.False(t, outcome.AllSucceeded())
	require.Equal(t, SelectionFromIDs("b"), outcome.FailedRefs())
}

func TestBatchOutcomeFailBatch(t *testing.T) {
	t.Parallel()

	outcome := NewBatchOutcome(OpBulkDelete, SelectionFromIDs("a", "b", "c"))
	outcome.FailBatch("bulk operation failed: timeout")

	require.Len(t, outcome.Results, 1)
	require.Equal(t, ScopeBatch, outcome.Results[0].Scope)
	require.Equal(t, 0, outcome.Successful)
	require.Equal(t, 3, outcome.Failed)
	require.Equal(t, SelectionFromIDs("a", "b", "c"), outcome.FailedRefs())
}

func TestFailedRefsKeepsDuplicatesByPosition(t *testing.T) {
	t.Parallel()

	outcome := NewBatchOutcome(OpUpdate, SelectionFromIDs("a", "a"))
	outcome.Add(OperationResult{EntityID: "a", Success: true})
	outcome.Add(OperationResult{EntityID: "a", Success: false})
	require.Equal(t, SelectionFromIDs("a"), outcome.FailedRefs())
}

func TestSelectionHelpers(t *testing.T) {
	t.Parallel()

	sel := SelectionFromIDs("3", "1", "2")
	require.Equal(t, []string{"3", "1", "2"}, sel.IDs())

	stripped := StripIdentity(map[string]interface{}{
		"id": "3", "_id": "x", "createdAt": "t", "updated_at": "t", "name": "Villa", "price": 10,
	})
	require.Equal(t, map[string]interface{}{"name": "Villa", "price": 10}, stripped)
}

func TestEntityIDAndType(t *testing.T) {
	t.Parallel()

	require.Equal(t, "42", Entity{"id": 42}.ID())
	require.Equal(t, "abc", Entity{"_id": "abc"}.ID())
	require.Equal(t, "", Entity{"name": "x"}.ID())

	kind, err := ParseEntityType("Property")
	require.NoError(t, err)
	require.Equal(t, EntityProperty, kind)
	_, err = ParseEntityType("leads")
	require.True(t, IsValidation(err))
}
