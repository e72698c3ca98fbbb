package registry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

// HistoryFileName is the file used inside the state directory.
const HistoryFileName = "history.json"

// ErrNoHistory is returned by LoadLast when no outcome was recorded for the entity type.
var ErrNoHistory = errors.New("no recorded outcome")

type historyFile struct {
	Version string                                   `json:"version"`
	Last    map[bulk.EntityType]ports.RecordedOutcome `json:"last"`
}

// HistoryStore keeps the most recent outcome per entity type.
type HistoryStore struct {
	file *jsonFile
}

// NewHistoryStore opens (or prepares) the history file at path.
func NewHistoryStore(path string) (*HistoryStore, error) {
	file, err := newJSONFile(path)
	if err != nil {
		return nil, err
	}
	return &HistoryStore{file: file}, nil
}

// NewHistoryStoreInDir opens history.json inside dir.
func NewHistoryStoreInDir(dir string) (*HistoryStore, error) {
	return NewHistoryStore(filepath.Join(dir, HistoryFileName))
}

// SaveLast records outcome as the latest run for entity. Outcomes of
// rejected runs are nil and are not recorded.
func (s *HistoryStore) SaveLast(ctx context.Context, entity bulk.EntityType, outcome *bulk.BatchOutcome, params bulk.OperationParams) error {
	if outcome == nil {
		return nil
	}
	return s.file.withLock(ctx, func() error {
		stored, err := s.readLocked()
		if err != nil {
			return err
		}
		stored.Last[entity] = ports.RecordedOutcome{
			Entity:  entity,
			Outcome: outcome,
			Params:  ports.RecordParams(params),
		}
		return s.file.write(stored)
	})
}

// LoadLast returns the latest recorded outcome for entity, or ErrNoHistory.
func (s *HistoryStore) LoadLast(ctx context.Context, entity bulk.EntityType) (*ports.RecordedOutcome, error) {
	var found *ports.RecordedOutcome
	err := s.file.withLock(ctx, func() error {
		stored, err := s.readLocked()
		if err != nil {
			return err
		}
		record, ok := stored.Last[entity]
		if !ok || record.Outcome == nil {
			return fmt.Errorf("%w for %s", ErrNoHistory, entity)
		}
		found = &record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *HistoryStore) readLocked() (historyFile, error) {
	stored := historyFile{
		Version: fileVersion,
		Last:    map[bulk.EntityType]ports.RecordedOutcome{},
	}
	if err := s.file.read(&stored); err != nil && !errors.Is(err, os.ErrNotExist) {
		return historyFile{}, err
	}
	if stored.Last == nil {
		stored.Last = map[bulk.EntityType]ports.RecordedOutcome{}
	}
	stored.Version = fileVersion
	return stored, nil
}

var _ ports.OutcomeStore = (*HistoryStore)(nil)
