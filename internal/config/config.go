// Package config holds the run configuration. It is resolved once at
// command start and passed explicitly into the tagger so the pipeline stays
// reentrant and testable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// File is the optional per-directory configuration file.
const File = ".sage.yaml"

type Config struct {
	// Command is the agent CLI used for tag suggestions.
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`

	Workers        int `yaml:"workers"`
	TimeoutSeconds int `yaml:"timeout"`
	TimeoutRetries int `yaml:"timeout_retries"`
	ErrorRetries   int `yaml:"error_retries"`

	// IgnoreTags are excluded from the already-tagged check, so a file
	// carrying only these still gets suggestions.
	IgnoreTags []string `yaml:"ignore_tags"`
}

func Default() Config {
	return Config{
		Command:        "claude",
		Workers:        5,
		TimeoutSeconds: 120,
		TimeoutRetries: 2,
		ErrorRetries:   1,
	}
}

// Load reads .sage.yaml from root over the defaults. A missing file is not
// an error.
func Load(root string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, File))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", File, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", File, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Command, validation.Required),
		validation.Field(&c.Workers, validation.Required, validation.Min(1), validation.Max(64)),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1)),
		validation.Field(&c.TimeoutRetries, validation.Min(0), validation.Max(10)),
		validation.Field(&c.ErrorRetries, validation.Min(0), validation.Max(10)),
	)
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
