package ports

import (
	"context"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
)

// ColumnPreferences records which list columns are visible per entity type.
type ColumnPreferences struct {
	Visible map[bulk.EntityType][]string `json:"visible"`
}

// PreferencesStore persists column visibility. Load returns empty
// preferences when nothing has been saved yet.
type PreferencesStore interface {
	Load(ctx context.Context) (ColumnPreferences, error)
	Save(ctx context.Context, prefs ColumnPreferences) error
}

// OutcomeStore keeps the most recent outcome per entity type so failed
// entities can be retried.
type OutcomeStore interface {
	SaveLast(ctx context.Context, entity bulk.EntityType, outcome *bulk.BatchOutcome, params bulk.OperationParams) error
	LoadLast(ctx context.Context, entity bulk.EntityType) (*RecordedOutcome, error)
}

// RecordedOutcome is a persisted outcome together with the params that
// produced it.
type RecordedOutcome struct {
	Entity  bulk.EntityType    `json:"entity"`
	Outcome *bulk.BatchOutcome `json:"outcome"`
	Params  RecordedParams     `json:"params"`
}

// RecordedParams is the serialisable form of bulk.OperationParams.
type RecordedParams struct {
	Fields       map[string]interface{} `json:"fields,omitempty"`
	Subject      string                 `json:"subject,omitempty"`
	Message      string                 `json:"message,omitempty"`
	ExportFormat string                 `json:"export_format,omitempty"`
	ExportFields []string               `json:"export_fields,omitempty"`
}

// RecordParams converts params for storage.
func RecordParams(p bulk.OperationParams) RecordedParams {
	return RecordedParams{
		Fields:       p.Fields,
		Subject:      p.Email.Subject,
		Message:      p.Email.Message,
		ExportFormat: p.ExportFormat,
		ExportFields: p.ExportFields,
	}
}

// OperationParams converts stored params back.
func (r RecordedParams) OperationParams() bulk.OperationParams {
	return bulk.OperationParams{
		Fields:       r.Fields,
		Email:        bulk.Message{Subject: r.Subject, Message: r.Message},
		ExportFormat: r.ExportFormat,
		ExportFields: r.ExportFields,
	}
}
