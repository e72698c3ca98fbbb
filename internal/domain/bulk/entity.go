package bulk

import (
	"fmt"
	"strings"
)

// EntityType identifies which CRM collection a batch targets.
type EntityType string

const (
	EntityCustomer EntityType = "customers"
	EntityProperty EntityType = "properties"
)

// ParseEntityType accepts singular or plural spellings.
func ParseEntityType(raw string) (EntityType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "customer", "customers":
		return EntityCustomer, nil
	case "property", "properties":
		return EntityProperty, nil
	default:
		return "", NewValidationError(fmt.Sprintf("unknown entity type %q", raw), nil)
	}
}

// Entity is a record as returned by the backend.
type Entity map[string]interface{}

// ID returns the entity identifier, accepting "id" or "_id".
func (e Entity) ID() string {
	for _, key := range []string{"id", "_id"} {
		if v, ok := e[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}

// EntityRef references one selected entity. Fields is optional and, when
// present, carries the record as the caller already knows it.
type EntityRef struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// Selection is the ordered list of selected entities.
type Selection []EntityRef

// SelectionFromIDs builds a selection from bare identifiers, preserving order.
func SelectionFromIDs(ids ...string) Selection {
	sel := make(Selection, 0, len(ids))
	for _, id := range ids {
		sel = append(sel, EntityRef{ID: id})
	}
	return sel
}

// IDs returns the identifiers in selection order.
func (s Selection) IDs() []string {
	ids := make([]string, len(s))
	for i, ref := range s {
		ids[i] = ref.ID
	}
	return ids
}

var identityFields = map[string]struct{}{
	"id": {}, "_id": {}, "uuid": {},
	"created_at": {}, "updated_at": {}, "deleted_at": {},
	"createdAt": {}, "updatedAt": {}, "deletedAt": {},
}

// StripIdentity returns a copy of fields without identity and timestamp keys,
// ready to be sent as a new record.
func StripIdentity(fields map[string]interface{}) map[string]interface{} {
	clone := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if _, skip := identityFields[k]; skip {
			continue
		}
		clone[k] = v
	}
	return clone
}
