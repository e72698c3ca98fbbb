package config

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	resourcePathPattern = regexp.MustCompile(`^(/[A-Za-z0-9._~-]+)+$`)
	columnNamePattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("resource_path", func(fl validator.FieldLevel) bool {
			path := fl.Field().String()
			if !resourcePathPattern.MatchString(path) {
				return false
			}
			for _, segment := range strings.Split(path, "/") {
				if segment == "." || segment == ".." {
					return false
				}
			}
			return true
		})

		_ = v.RegisterValidation("column_name", func(fl validator.FieldLevel) bool {
			return columnNamePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
