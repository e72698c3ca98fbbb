package ports

import (
	"context"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
)

// RemoteEntityService is the backend collaborator of a batch run. One
// instance serves one entity collection (customers or properties). Calls are
// expected to be plain request/response round-trips; implementations should
// honour ctx deadlines and must not retry on their own because each entity
// gets exactly one attempt per batch.
type RemoteEntityService interface {
	Get(ctx context.Context, id string) (bulk.Entity, error)
	List(ctx context.Context, filter ListFilter) (EntityPage, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	Create(ctx context.Context, fields map[string]interface{}) (bulk.Entity, error)
	BulkUpdate(ctx context.Context, ids []string, fields map[string]interface{}) error
	BulkDelete(ctx context.Context, ids []string) error
	BulkExport(ctx context.Context, filter bulk.ExportFilter) (*bulk.Artifact, error)
	SendMessage(ctx context.Context, id string, msg bulk.Message) error
}

// ListFilter narrows a list request. Zero values mean "not set".
type ListFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// EntityPage is one page of list results.
type EntityPage struct {
	Items []bulk.Entity
	Total int
	Page  int
	Limit int
}
