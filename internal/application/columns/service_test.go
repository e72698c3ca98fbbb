package columns

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

type memoryStore struct {
	prefs   ports.ColumnPreferences
	saves   int
	loadErr error
}

func (m *memoryStore) Load(context.Context) (ports.ColumnPreferences, error) {
	if m.loadErr != nil {
		return ports.ColumnPreferences{}, m.loadErr
	}
	copied := ports.ColumnPreferences{Visible: map[bulk.EntityType][]string{}}
	for k, v := range m.prefs.Visible {
		copied.Visible[k] = append([]string(nil), v...)
	}
	return copied, nil
}

func (m *memoryStore) Save(_ context.Context, prefs ports.ColumnPreferences) error {
	m.saves++
	m.prefs = prefs
	return nil
}

func newService(store *memoryStore) *Service {
	return NewService(store, map[bulk.EntityType][]string{
		bulk.EntityCustomer: {"id", "name", "email", "status"},
	})
}

func TestVisibleFallsBackToDefaults(t *testing.T) {
	svc := newService(&memoryStore{})

	cols, err := svc.Visible(context.Background(), bulk.EntityCustomer)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name", "email", "status"}, cols)

	cols, err = svc.Visible(context.Background(), bulk.EntityProperty)
	require.NoError(t, err)
	require.Empty(t, cols)
}

func TestHideAndShow(t *testing.T) {
	store := &memoryStore{}
	svc := newService(store)
	ctx := context.Background()

	cols, err := svc.Hide(ctx, bulk.EntityCustomer, "email", "unknown")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name", "status"}, cols)

	cols, err = svc.Show(ctx, bulk.EntityCustomer, "email", "name", "phone")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name", "status", "email", "phone"}, cols)

	visible, err := svc.Visible(ctx, bulk.EntityCustomer)
	require.NoError(t, err)
	require.Equal(t, cols, visible)
	require.Equal(t, 2, store.saves)
}

func TestHideEverythingRejected(t *testing.T) {
	store := &memoryStore{}
	svc := newService(store)

	_, err := svc.Hide(context.Background(), bulk.EntityCustomer, "id", "name", "email", "status")
	require.True(t, bulk.IsValidation(err))
	require.Zero(t, store.saves)
}

func TestReset(t *testing.T) {
	store := &memoryStore{prefs: ports.ColumnPreferences{Visible: map[bulk.EntityType][]string{
		bulk.EntityCustomer: {"id"},
	}}}
	svc := newService(store)

	cols, err := svc.Reset(context.Background(), bulk.EntityCustomer)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name", "email", "status"}, cols)
	_, saved := store.prefs.Visible[bulk.EntityCustomer]
	require.False(t, saved)
}

func TestLoadErrorPropagates(t *testing.T) {
	boom := errors.New("disk gone")
	svc := newService(&memoryStore{loadErr: boom})

	_, err := svc.Show(context.Background(), bulk.EntityCustomer, "x")
	require.ErrorIs(t, err, boom)
}
