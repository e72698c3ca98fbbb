package bulk

import (
	"strings"
)

// Export formats accepted by the backend.
const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
	ExportJSON = "json"
)

// Message is the payload of an email operation.
type Message struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ExportFilter selects what a bulk export covers.
type ExportFilter struct {
	IDs    []string `json:"ids"`
	Format string   `json:"format"`
	Fields []string `json:"fields,omitempty"`
}

// OperationParams carries operation-specific input.
type OperationParams struct {
	// Fields to apply for update and bulk_update.
	Fields map[string]interface{}
	// Email content for email.
	Email Message
	// Format and columns for export.
	ExportFormat string
	ExportFields []string
}

// NonEmptyFields returns the fields carrying a value. Nil values and blank
// strings are dropped.
func (p OperationParams) NonEmptyFields() map[string]interface{} {
	out := make(map[string]interface{}, len(p.Fields))
	for k, v := range p.Fields {
		if strings.TrimSpace(k) == "" || v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// Validate checks the params required by op.
func (p OperationParams) Validate(op OperationKind) error {
	switch op {
	case OpUpdate, OpBulkUpdate:
		if len(p.NonEmptyFields()) == 0 {
			return ErrNoUpdateFields
		}
	case OpEmail:
		if strings.TrimSpace(p.Email.Subject) == "" {
			return ErrEmailSubject
		}
		if strings.TrimSpace(p.Email.Message) == "" {
			return ErrEmailMessage
		}
	case OpExport:
		switch p.exportFormat() {
		case ExportCSV, ExportXLSX, ExportJSON:
		default:
			return ErrExportFormat.WithContext(map[string]interface{}{"format": p.ExportFormat})
		}
	}
	return nil
}

// ExportFilterFor builds the export filter for the selection.
func (p OperationParams) ExportFilterFor(sel Selection) ExportFilter {
	return ExportFilter{
		IDs:    sel.IDs(),
		Format: p.exportFormat(),
		Fields: append([]string(nil), p.ExportFields...),
	}
}

func (p OperationParams) exportFormat() string {
	format := strings.ToLower(strings.TrimSpace(p.ExportFormat))
	if format == "" {
		return ExportCSV
	}
	return format
}
