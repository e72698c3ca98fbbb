package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	crmerrors "github.com/VenkataThrinadh/crmbulk/pkg/errors"
)

// convertValidationError normalizes validator errors into config validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return crmerrors.NewValidationError(field, msg, err)
	}

	return crmerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName renders the failing field as a dotted YAML path without
// the root struct name, e.g. "entities.customers.columns[1]".
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

func fieldForColumn(entity string, index int) string {
	return fmt.Sprintf("entities.%s.columns[%d]", entity, index)
}
