package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/VenkataThrinadh/crmbulk/internal/domain/bulk"
)

const (
	defaultDirName      = ".crmbulk"
	defaultFileName     = "config.yaml"
	defaultTimeout      = 30 * time.Second
	defaultCustomerPath = "/api/customers"
	defaultPropertyPath = "/api/properties"
)

// Config represents the full crmbulk configuration document.
type Config struct {
	API      API      `yaml:"api"`
	Entities Entities `yaml:"entities"`
	Email    Email    `yaml:"email"`
	Log      Log      `yaml:"log"`
	State    State    `yaml:"state"`
}

// API describes how to reach the CRM backend.
type API struct {
	BaseURL   string        `yaml:"base_url" validate:"required,http_url"`
	Timeout   time.Duration `yaml:"timeout" validate:"gte=1s,lte=10m"`
	UserAgent string        `yaml:"user_agent,omitempty"`
}

// Entities holds per-collection settings.
type Entities struct {
	Customers  EntityConfig `yaml:"customers"`
	Properties EntityConfig `yaml:"properties"`
}

// EntityConfig locates a collection and lists its default visible columns.
type EntityConfig struct {
	Path    string   `yaml:"path" validate:"required,resource_path"`
	Columns []string `yaml:"columns,omitempty" validate:"omitempty,dive,column_name"`
}

// Email bounds the email fan-out. Zero means unbounded.
type Email struct {
	MaxConcurrency int `yaml:"max_concurrency" validate:"gte=0,lte=64"`
}

// Log configures logging output.
type Log struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// State locates on-disk preferences and history.
type State struct {
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file sets a value.
func Default() Config {
	return Config{
		API: API{
			Timeout: defaultTimeout,
		},
		Entities: Entities{
			Customers: EntityConfig{
				Path:    defaultCustomerPath,
				Columns: []string{"id", "name", "email", "phone", "status"},
			},
			Properties: EntityConfig{
				Path:    defaultPropertyPath,
				Columns: []string{"id", "title", "city", "price", "status"},
			},
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultDir returns ~/.crmbulk.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultDirName), nil
}

// DefaultPath returns ~/.crmbulk/config.yaml.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultFileName), nil
}

// Entity returns the settings for the given collection.
func (c *Config) Entity(t bulk.EntityType) EntityConfig {
	if t == bulk.EntityProperty {
		return c.Entities.Properties
	}
	return c.Entities.Customers
}

// StateDir returns the configured state directory, falling back to ~/.crmbulk.
func (c *Config) StateDir() (string, error) {
	if c.State.Dir != "" {
		return c.State.Dir, nil
	}
	return DefaultDir()
}
