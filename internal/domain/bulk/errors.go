package bulk

import (
	"errors"
	"fmt"
)

// ErrorCode identifies well-known error categories of the bulk domain.
type ErrorCode string

const (
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeEntityOperation ErrorCode = "ENTITY_OPERATION_ERROR"
	ErrCodeBatchSetup      ErrorCode = "BATCH_SETUP_ERROR"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents a typed error enriched with contextual data while
// remaining free from infrastructure dependencies.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is allows errors.Is comparisons against other DomainError values.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if !errors.As(target, &domainErr) {
		return false
	}
	return e.Code == domainErr.Code && e.Message == domainErr.Message
}

// WithContext clones the error with additional contextual metadata.
func (e *DomainError) WithContext(ctx map[string]interface{}) *DomainError {
	if e == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Context: merged,
	}
}

// Sentinel validation errors. Compare with errors.Is.
var (
	ErrNoOperation      = NewValidationError("no operation selected", nil)
	ErrUnknownOperation = NewValidationError("unknown operation", nil)
	ErrNoItems          = NewValidationError("no items selected", nil)
	ErrNoUpdateFields   = NewValidationError("at least one field must be provided", nil)
	ErrEmailSubject     = NewValidationError("email subject is required", nil)
	ErrEmailMessage     = NewValidationError("email message is required", nil)
	ErrExportFormat     = NewValidationError("unsupported export format", nil)
)

// NewValidationError reports invalid input detected before any remote call.
func NewValidationError(message string, context map[string]interface{}) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: message, Context: context}
}

// NewEntityOperationError wraps the failure of a single entity's remote call.
func NewEntityOperationError(op OperationKind, entityID string, cause error) *DomainError {
	return &DomainError{
		Code:    ErrCodeEntityOperation,
		Message: "entity operation failed",
		Cause:   cause,
		Context: map[string]interface{}{"operation": string(op), "entity_id": entityID},
	}
}

// NewBatchSetupError reports a failure outside the per-entity loop.
func NewBatchSetupError(op OperationKind, cause error) *DomainError {
	return &DomainError{
		Code:    ErrCodeBatchSetup,
		Message: "bulk operation failed",
		Cause:   cause,
		Context: map[string]interface{}{"operation": string(op)},
	}
}

// NewNotFoundError reports that the backend has no entity with entityID.
func NewNotFoundError(entityID string, cause error) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: "entity not found",
		Cause:   cause,
		Context: map[string]interface{}{"entity_id": entityID},
	}
}

// IsNotFound reports whether err is a missing-entity failure.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsBatchSetup reports whether err is a batch setup failure.
func IsBatchSetup(err error) bool {
	return hasCode(err, ErrCodeBatchSetup)
}

func hasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	return domainErr.Code == code
}
