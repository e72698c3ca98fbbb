package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

func TestPreferencesLoadEmpty(t *testing.T) {
	store, err := NewPreferencesStoreInDir(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)

	prefs, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prefs.Visible)
	assert.NotNil(t, prefs.Visible)
}

func TestPreferencesSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFileName)
	store, err := NewPreferencesStore(path)
	require.NoError(t, err)

	ctx := context.Background()
	err = store.Save(ctx, ports.ColumnPreferences{Visible: map[bulk.EntityType][]string{
		bulk.EntityCustomer: {"id", "email"},
	}})
	require.NoError(t, err)

	reopened, err := NewPreferencesStore(path)
	require.NoError(t, err)
	prefs, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "email"}, prefs.Visible[bulk.EntityCustomer])

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")
}

func TestPreferencesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewPreferencesStore(path)
	require.NoError(t, err)
	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse preferences.json")
}

func TestPreferencesLockedByAnotherHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), PreferencesFileName)
	store, err := NewPreferencesStore(path)
	require.NoError(t, err)

	other := flock.New(path + ".lock")
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer func() { _ = other.Unlock() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Load(ctx)
	require.Error(t, err)
}
