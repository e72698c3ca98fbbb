// Package columns manages list column visibility on top of a
// ports.PreferencesStore.
package columns

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

// Service resolves and edits visible columns per entity type.
type Service struct {
	store    ports.PreferencesStore
	defaults map[bulk.EntityType][]string
}

// NewService builds a Service. defaults holds the columns shown when the
// user never changed visibility; they are also the set Show may re-enable.
func NewService(store ports.PreferencesStore, defaults map[bulk.EntityType][]string) *Service {
	copied := make(map[bulk.EntityType][]string, len(defaults))
	for entity, cols := range defaults {
		copied[entity] = append([]string(nil), cols...)
	}
	return &Service{store: store, defaults: copied}
}

// Visible returns the visible columns for entity in display order.
func (s *Service) Visible(ctx context.Context, entity bulk.EntityType) ([]string, error) {
	prefs, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cols, ok := prefs.Visible[entity]; ok {
		return append([]string(nil), cols...), nil
	}
	return append([]string(nil), s.defaults[entity]...), nil
}

// Show makes columns visible, appending unseen ones at the end.
func (s *Service) Show(ctx context.Context, entity bulk.EntityType, columns ...string) ([]string, error) {
	return s.update(ctx, entity, func(current []string) ([]string, error) {
		return lo.Uniq(append(current, columns...)), nil
	})
}

// Hide removes columns. Hiding every column is rejected.
func (s *Service) Hide(ctx context.Context, entity bulk.EntityType, columns ...string) ([]string, error) {
	return s.update(ctx, entity, func(current []string) ([]string, error) {
		next := lo.Without(current, columns...)
		if len(next) == 0 {
			return nil, bulk.NewValidationError("at least one column must stay visible", map[string]interface{}{"entity": entity})
		}
		return next, nil
	})
}

// Reset drops the saved visibility for entity so defaults apply again.
func (s *Service) Reset(ctx context.Context, entity bulk.EntityType) ([]string, error) {
	prefs, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	delete(prefs.Visible, entity)
	if err := s.store.Save(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return append([]string(nil), s.defaults[entity]...), nil
}

func (s *Service) update(ctx context.Context, entity bulk.EntityType, change func([]string) ([]string, error)) ([]string, error) {
	prefs, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if prefs.Visible == nil {
		prefs.Visible = map[bulk.EntityType][]string{}
	}
	current, ok := prefs.Visible[entity]
	if !ok {
		current = s.defaults[entity]
	}

	next, err := change(append([]string(nil), current...))
	if err != nil {
		return nil, err
	}
	prefs.Visible[entity] = next
	if err := s.store.Save(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return append([]string(nil), next...), nil
}
