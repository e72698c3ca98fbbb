package config

import (
	"fmt"

	crmerrors "github.com/VenkataThrinadh/crmbulk/pkg/errors"
)

// ValidateConfig performs structural and cross-field validation on an entire configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return crmerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if cfg.Entities.Customers.Path == cfg.Entities.Properties.Path {
		return crmerrors.NewValidationError("entities.properties.path", fmt.Sprintf("path %q is already used by customers", cfg.Entities.Properties.Path), nil)
	}

	if err := validateColumns("customers", cfg.Entities.Customers.Columns); err != nil {
		return err
	}
	if err := validateColumns("properties", cfg.Entities.Properties.Columns); err != nil {
		return err
	}

	return nil
}

func validateColumns(entity string, columns []string) error {
	seen := make(map[string]int, len(columns))
	for i, column := range columns {
		if first, exists := seen[column]; exists {
			return crmerrors.NewValidationError(fieldForColumn(entity, i), fmt.Sprintf("duplicate column %q (first at index %d)", column, first), nil)
		}
		seen[column] = i
	}
	return nil
}
