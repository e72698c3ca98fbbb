package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
)

func TestNewModelInitialisesState(t *testing.T) {
	m := NewModel(bulk.EntityCustomer, bulk.OpDelete, 3)

	require.Equal(t, bulk.EntityCustomer, m.entity)
	require.Equal(t, bulk.OpDelete, m.operation)
	require.Equal(t, 3, m.Total())
	require.Zero(t, m.Processed())
	require.False(t, m.IsFinished())
	require.Nil(t, m.Outcome())
}

func TestModelInitReturnsTickCommand(t *testing.T) {
	m := NewModel(bulk.EntityProperty, bulk.OpExport, 1)
	require.NotNil(t, m.Init())
}
