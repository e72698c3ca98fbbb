package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	crmerrors "github.com/VenkataThrinadh/crmbulk/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// envOverrides lists the variables that replace file values when set.
type envOverrides struct {
	BaseURL        string        `env:"CRMBULK_BASE_URL"`
	Timeout        time.Duration `env:"CRMBULK_TIMEOUT"`
	LogLevel       string        `env:"CRMBULK_LOG_LEVEL"`
	LogFormat      string        `env:"CRMBULK_LOG_FORMAT"`
	StateDir       string        `env:"CRMBULK_STATE_DIR"`
	MaxConcurrency *int          `env:"CRMBULK_EMAIL_MAX_CONCURRENCY, noinit"`
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Path of the YAML file. Empty means the default path, which may be
	// missing.
	Path string
	// Lookuper resolves environment variables. Nil uses the process
	// environment.
	Lookuper envconfig.Lookuper
}

// ParseConfig loads a configuration file from disk, validates it, and returns the resulting model.
func ParseConfig(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(path, &cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load builds the effective configuration: defaults, then the YAML file,
// then environment overrides, then validation.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.Path
	optional := false
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, crmerrors.NewParseError("config", 0, err)
		}
		path = defaultPath
		optional = true
	}

	if err := decodeFile(path, &cfg); err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := applyEnv(ctx, &cfg, opts.Lookuper); err != nil {
		return nil, err
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return crmerrors.NewParseError(path, 0, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return crmerrors.NewParseError(path, extractLine(err), err)
	}
	return nil
}

func applyEnv(ctx context.Context, cfg *Config, lookuper envconfig.Lookuper) error {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var in envOverrides
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &in,
		Lookuper: lookuper,
	}); err != nil {
		return crmerrors.NewValidationError("environment", err.Error(), err)
	}

	if in.BaseURL != "" {
		cfg.API.BaseURL = in.BaseURL
	}
	if in.Timeout != 0 {
		cfg.API.Timeout = in.Timeout
	}
	if in.LogLevel != "" {
		cfg.Log.Level = in.LogLevel
	}
	if in.LogFormat != "" {
		cfg.Log.Format = in.LogFormat
	}
	if in.StateDir != "" {
		cfg.State.Dir = in.StateDir
	}
	if in.MaxConcurrency != nil {
		cfg.Email.MaxConcurrency = *in.MaxConcurrency
	}
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
