package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/dd0wney/corridor-planarity/pkg/validation"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Source kinds
const (
	SourceFile     = "file"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// Report formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the analyzer configuration, usually read from YAML
type Config struct {
	LogLevel                string       `yaml:"log_level"`
	Workers                 int          `yaml:"workers"`
	LargeComponentThreshold int          `yaml:"large_component_threshold"`
	Source                  SourceConfig `yaml:"source"`
	Report                  ReportConfig `yaml:"report"`
}

// SourceConfig says where the settlement and corridor lists come from
type SourceConfig struct {
	Kind   string `yaml:"kind"`
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // jsonl, yaml or json; inferred from the path or key when empty

	// S3
	Bucket          string `yaml:"bucket"`
	Key             string `yaml:"key"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`

	// Postgres
	DSN              string `yaml:"dsn"`
	SettlementsTable string `yaml:"settlements_table"`
	CorridorsTable   string `yaml:"corridors_table"`
}

// ReportConfig controls presentation and telemetry output
type ReportConfig struct {
	Format      string `yaml:"format"`
	MetricsFile string `yaml:"metrics_file"`
	Color       bool   `yaml:"color"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		LogLevel:                "info",
		Workers:                 1,
		LargeComponentThreshold: 40,
		Source: SourceConfig{
			Kind:             SourceFile,
			SettlementsTable: "settlements",
			CorridorsTable:   "corridors",
		},
		Report: ReportConfig{
			Format: FormatText,
			Color:  true,
		},
	}
}

// Load reads a YAML file on top of the defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.expandEnv()
	return cfg, nil
}

// expandEnv resolves ${VAR} references in secrets and connection strings
func (c *Config) expandEnv() {
	c.Source.DSN = os.ExpandEnv(c.Source.DSN)
	c.Source.AccessKeyID = os.ExpandEnv(c.Source.AccessKeyID)
	c.Source.SecretAccessKey = os.ExpandEnv(c.Source.SecretAccessKey)
	c.Source.Endpoint = os.ExpandEnv(c.Source.Endpoint)
}

// Validate checks every section and reports all problems at once
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("config").
		OneOf("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "warning", "error"}).
		Positive("workers", c.Workers).
		MaxInt("workers", c.Workers, 16*runtime.NumCPU()).
		NonNegative("large_component_threshold", c.LargeComponentThreshold)

	src := c.Source
	cv.OneOf("source.kind", src.Kind, []string{SourceFile, SourceS3, SourcePostgres}).
		When(src.Format != "", func(cv *validation.ConfigValidator) {
			cv.OneOf("source.format", src.Format, []string{"jsonl", "yaml", "json"})
		}).
		When(src.Kind == SourceFile, func(cv *validation.ConfigValidator) {
			cv.Required("source.path", src.Path)
		}).
		When(src.Kind == SourceS3, func(cv *validation.ConfigValidator) {
			cv.Required("source.bucket", src.Bucket).
				Required("source.key", src.Key).
				Custom("source.access_key_id", func() error {
					if (src.AccessKeyID == "") != (src.SecretAccessKey == "") {
						return errors.New("access_key_id and secret_access_key must be set together")
					}
					return nil
				})
		}).
		When(src.Kind == SourcePostgres, func(cv *validation.ConfigValidator) {
			cv.Required("source.dsn", src.DSN).
				Required("source.settlements_table", src.SettlementsTable).
				Required("source.corridors_table", src.CorridorsTable)
		})

	cv.OneOf("report.format", c.Report.Format, []string{FormatText, FormatJSON})

	if err := cv.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SourceName describes the configured source for logs and reports
func (s SourceConfig) SourceName() string {
	switch s.Kind {
	case SourceS3:
		return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
	case SourcePostgres:
		return fmt.Sprintf("postgres:%s+%s", s.SettlementsTable, s.CorridorsTable)
	default:
		return s.Path
	}
}
