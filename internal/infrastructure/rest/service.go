package rest

import (
	"context"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

// EntityService talks to one collection of the backend.
type EntityService struct {
	client *Client
	base   string
}

func (s *EntityService) itemPath() string {
	return s.base + "/{id}"
}

func (s *EntityService) collection() string {
	return s.base[strings.LastIndex(s.base, "/")+1:]
}

// Get fetches a single entity.
func (s *EntityService) Get(ctx context.Context, id string) (bulk.Entity, error) {
	path := s.base + "/" + id
	resp, err := s.client.request(ctx).
		SetPathParam("id", id).
		Get(s.itemPath())
	env, err := checkResponse(http.MethodGet, path, resp, err)
	if err != nil {
		return nil, err
	}
	return decodeEntity(http.MethodGet, path, env.Data)
}

// List fetches one page of the collection.
func (s *EntityService) List(ctx context.Context, filter ports.ListFilter) (ports.EntityPage, error) {
	query := map[string]string{}
	if filter.Page > 0 {
		query["page"] = strconv.Itoa(filter.Page)
	}
	if filter.Limit > 0 {
		query["limit"] = strconv.Itoa(filter.Limit)
	}
	if filter.Search != "" {
		query["search"] = filter.Search
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	resp, err := s.client.request(ctx).
		SetQueryParams(query).
		Get(s.base)
	env, err := checkResponse(http.MethodGet, s.base, resp, err)
	if err != nil {
		return ports.EntityPage{}, err
	}

	items, nestedTotal, err := decodeItems(http.MethodGet, s.base, s.collection(), env.Data)
	if err != nil {
		return ports.EntityPage{}, err
	}

	page := ports.EntityPage{
		Items: items,
		Total: len(items),
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	switch {
	case env.Pagination != nil:
		page.Total = env.Pagination.Total
		if env.Pagination.Page > 0 {
			page.Page = env.Pagination.Page
		}
		if env.Pagination.Limit > 0 {
			page.Limit = env.Pagination.Limit
		}
	case env.Total != nil:
		page.Total = *env.Total
	case nestedTotal != nil:
		page.Total = *nestedTotal
	}
	return page, nil
}

// Update applies fields to one entity.
func (s *EntityService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	resp, err := s.client.request(ctx).
		SetPathParam("id", id).
		SetBody(fields).
		Put(s.itemPath())
	_, err = checkResponse(http.MethodPut, s.base+"/"+id, resp, err)
	return err
}

// Delete removes one entity.
func (s *EntityService) Delete(ctx context.Context, id string) error {
	resp, err := s.client.request(ctx).
		SetPathParam("id", id).
		Delete(s.itemPath())
	_, err = checkResponse(http.MethodDelete, s.base+"/"+id, resp, err)
	return err
}

// Create inserts a new entity and returns the stored record.
func (s *EntityService) Create(ctx context.Context, fields map[string]interface{}) (bulk.Entity, error) {
	resp, err := s.client.request(ctx).
		SetBody(fields).
		Post(s.base)
	env, err := checkResponse(http.MethodPost, s.base, resp, err)
	if err != nil {
		return nil, err
	}
	return decodeEntity(http.MethodPost, s.base, env.Data)
}

type bulkUpdateRequest struct {
	IDs     []string               `json:"ids"`
	Updates map[string]interface{} `json:"updates"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkUpdate applies fields to every id in one call.
func (s *EntityService) BulkUpdate(ctx context.Context, ids []string, fields map[string]interface{}) error {
	path := s.base + "/bulk-update"
	resp, err := s.client.request(ctx).
		SetBody(bulkUpdateRequest{IDs: ids, Updates: fields}).
		Post(path)
	_, err = checkResponse(http.MethodPost, path, resp, err)
	return err
}

// BulkDelete removes every id in one call.
func (s *EntityService) BulkDelete(ctx context.Context, ids []string) error {
	path := s.base + "/bulk-delete"
	resp, err := s.client.request(ctx).
		SetBody(bulkDeleteRequest{IDs: ids}).
		Post(path)
	_, err = checkResponse(http.MethodPost, path, resp, err)
	return err
}

// BulkExport requests an export of the filtered entities and returns the
// raw file.
func (s *EntityService) BulkExport(ctx context.Context, filter bulk.ExportFilter) (*bulk.Artifact, error) {
	path := s.base + "/export"
	resp, err := s.client.request(ctx).
		SetHeader("Accept", "*/*").
		SetBody(filter).
		Post(path)
	if _, err := checkResponse(http.MethodPost, path, resp, err); err != nil {
		return nil, err
	}

	artifact := &bulk.Artifact{
		ContentType: resp.Header().Get("Content-Type"),
		Filename:    attachmentName(resp.Header().Get("Content-Disposition")),
		Data:        resp.Body(),
	}
	if artifact.Filename == "" {
		artifact.Filename = s.collection() + "." + filter.Format
	}
	return artifact, nil
}

// SendMessage emails one entity.
func (s *EntityService) SendMessage(ctx context.Context, id string, msg bulk.Message) error {
	resp, err := s.client.request(ctx).
		SetPathParam("id", id).
		SetBody(msg).
		Post(s.itemPath() + "/message")
	_, err = checkResponse(http.MethodPost, s.base+"/"+id+"/message", resp, err)
	return err
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

var _ ports.RemoteEntityService = (*EntityService)(nil)
