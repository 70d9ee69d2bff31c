// Package config resolves where the grader reads submissions from and where
// it writes its chart.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults reproduce the classroom layout the grader was written for.
const (
	DefaultSubmissionsDir = "Day3-Activity-Results/student_code"
	DefaultAnswerKeyName  = "answer_key.csv"
	DefaultChartPath      = "financial_predictions.png"

	// DefaultFile is read from the working directory when present.
	DefaultFile = "fraudgrade.yaml"
)

// Config holds grader configuration.
type Config struct {
	// SubmissionsDir is scanned for *.csv submissions.
	SubmissionsDir string `yaml:"submissions_dir"`

	// AnswerKey is the answer key path. A bare file name is resolved
	// inside SubmissionsDir.
	AnswerKey string `yaml:"answer_key"`

	// Chart is where the cumulative impact chart is written.
	Chart string `yaml:"chart"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error. Default: warn
	Encoding string `yaml:"encoding"` // console or json. Default: console
}

// DefaultConfig returns a Config with the classroom defaults.
func DefaultConfig() Config {
	return Config{
		SubmissionsDir: DefaultSubmissionsDir,
		AnswerKey:      DefaultAnswerKeyName,
		Chart:          DefaultChartPath,
		Log: LogConfig{
			Level:    "warn",
			Encoding: "console",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path reads DefaultFile if it exists and otherwise returns the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with FRAUDGRADE_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("FRAUDGRADE_DIR"); v != "" {
		c.SubmissionsDir = v
	}
	if v := os.Getenv("FRAUDGRADE_ANSWER_KEY"); v != "" {
		c.AnswerKey = v
	}
	if v := os.Getenv("FRAUDGRADE_CHART"); v != "" {
		c.Chart = v
	}
	if v := os.Getenv("FRAUDGRADE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// AnswerKeyPath returns the answer key location, resolving a bare file name
// against SubmissionsDir.
func (c Config) AnswerKeyPath() string {
	if filepath.Base(c.AnswerKey) == c.AnswerKey {
		return filepath.Join(c.SubmissionsDir, c.AnswerKey)
	}
	return c.AnswerKey
}

// AnswerKeyName is the base name excluded from submission discovery.
func (c Config) AnswerKeyName() string {
	return filepath.Base(c.AnswerKey)
}

// Validate checks that every path is set and the log settings are known.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SubmissionsDir) == "" {
		return fmt.Errorf("submissions directory is required")
	}
	if strings.TrimSpace(c.AnswerKey) == "" {
		return fmt.Errorf("answer key path is required")
	}
	if strings.TrimSpace(c.Chart) == "" {
		return fmt.Errorf("chart path is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %q", c.Log.Level)
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log encoding: %q", c.Log.Encoding)
	}
	return nil
}
