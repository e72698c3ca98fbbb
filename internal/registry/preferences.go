package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

// PreferencesFileName is the file used inside the state directory.
const PreferencesFileName = "preferences.json"

type preferencesFile struct {
	Version string                       `json:"version"`
	Visible map[bulk.EntityType][]string `json:"visible"`
}

// PreferencesStore keeps column visibility in a JSON file.
type PreferencesStore struct {
	file *jsonFile
}

// NewPreferencesStore opens (or prepares) the preferences file at path.
func NewPreferencesStore(path string) (*PreferencesStore, error) {
	file, err := newJSONFile(path)
	if err != nil {
		return nil, err
	}
	return &PreferencesStore{file: file}, nil
}

// NewPreferencesStoreInDir opens preferences.json inside dir.
func NewPreferencesStoreInDir(dir string) (*PreferencesStore, error) {
	return NewPreferencesStore(filepath.Join(dir, PreferencesFileName))
}

// Load returns saved preferences, or empty preferences when none exist.
func (s *PreferencesStore) Load(ctx context.Context) (ports.ColumnPreferences, error) {
	prefs := ports.ColumnPreferences{Visible: map[bulk.EntityType][]string{}}
	err := s.file.withLock(ctx, func() error {
		var stored preferencesFile
		if err := s.file.read(&stored); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		for entity, columns := range stored.Visible {
			prefs.Visible[entity] = append([]string(nil), columns...)
		}
		return nil
	})
	if err != nil {
		return ports.ColumnPreferences{}, err
	}
	return prefs, nil
}

// Save replaces the stored preferences.
func (s *PreferencesStore) Save(ctx context.Context, prefs ports.ColumnPreferences) error {
	return s.file.withLock(ctx, func() error {
		stored := preferencesFile{
			Version: fileVersion,
			Visible: prefs.Visible,
		}
		if stored.Visible == nil {
			stored.Visible = map[bulk.EntityType][]string{}
		}
		return s.file.write(stored)
	})
}

var _ ports.PreferencesStore = (*PreferencesStore)(nil)
