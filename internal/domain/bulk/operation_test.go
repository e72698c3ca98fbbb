package bulk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOperationKind(t *testing.T) {
	t.Parallel()

	cases := map[string]OperationKind{
		"update":      OpUpdate,
		" Delete ":    OpDelete,
		"bulk-delete": OpBulkDelete,
		"bulk_update": OpBulkUpdate,
		"EMAIL":       OpEmail,
		"restore":     OpRestore,
	}
	for input, want := range cases {
		got, err := ParseOperationKind(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}
}

func TestParseOperationKindRejectsInput(t *testing.T) {
	t.Parallel()

	_, err := ParseOperationKind("  ")
	require.ErrorIs(t, err, ErrNoOperation)

	_, err = ParseOperationKind("launch")
	require.ErrorIs(t, err, ErrUnknownOperation)
	require.True(t, IsValidation(err))
}

func TestOperationInfo(t *testing.T) {
	t.Parallel()

	require.True(t, OpDelete.IsDestructive())
	require.True(t, OpBulkDelete.IsDestructive())
	require.True(t, OpArchive.IsDestructive())
	require.False(t, OpActivate.IsDestructive())
	require.False(t, OperationKind("nope").Valid())

	info, ok := OpDeactivate.Info()
	require.True(t, ok)
	require.Equal(t, StrategyPerEntity, info.Strategy)
	require.Equal(t, StatusInactive, info.TargetStatus)

	info, _ = OpEmail.Info()
	require.Equal(t, StrategyFanOut, info.Strategy)
	info, _ = OpExport.Info()
	require.Equal(t, StrategyBulkCall, info.Strategy)
}

func TestAllOperationsSorted(t *testing.T) {
	t.Parallel()

	infos := AllOperations()
	require.Len(t, infos, 11)
	for i := 1; i < len(infos); i++ {
		require.Less(t, string(infos[i-1].Kind), string(infos[i].Kind))
	}
}
