package config

import (
	"fmt"
	"strings"
	"time"
)

// Progress display modes
const (
	ProgressAuto = "auto"
	ProgressBar  = "bar"
	ProgressLine = "line"
	ProgressNone = "none"
)

// Config holds all application configuration
type Config struct {
	// Core settings
	Environment string
	ServiceName string
	LogLevel    string
	Version     string

	// Component configurations
	HTTP     HTTPConfig
	Storage  StorageConfig
	Progress ProgressConfig
	Metrics  MetricsConfig
}

// HTTPConfig holds HTTP client configuration
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
	MaxSize   int64 // 0 means unlimited
}

// StorageConfig holds configuration for remote link stores
type StorageConfig struct {
	Timeout    time.Duration
	MaxRetries int
	S3         S3Config
}

// S3Config holds S3 specific configuration
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Custom endpoint (MinIO, LocalStack)
	UsePathStyle    bool
}

// ProgressConfig controls how transfer progress is displayed
type ProgressConfig struct {
	Mode     string
	Interval time.Duration
}

// MetricsConfig controls the Prometheus textfile export
type MetricsConfig struct {
	File string
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	var errors []string

	if c.ServiceName == "" {
		errors = append(errors, "SERVICE_NAME is required")
	}

	if err := c.HTTP.Validate(); err != nil {
		errors = append(errors, err.Error())
	}
	if err := c.Storage.Validate(); err != nil {
		errors = append(errors, err.Error())
	}
	if err := c.Progress.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate validates HTTP client configuration
func (h *HTTPConfig) Validate() error {
	if h.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if h.MaxSize < 0 {
		return fmt.Errorf("HTTP_MAX_SIZE cannot be negative")
	}
	return nil
}

// Validate validates storage configuration
func (s *StorageConfig) Validate() error {
	if s.Timeout <= 0 {
		return fmt.Errorf("STORAGE_TIMEOUT must be positive")
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("STORAGE_MAX_RETRIES cannot be negative")
	}
	if (s.S3.AccessKeyID == "") != (s.S3.SecretAccessKey == "") {
		return fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together")
	}
	return nil
}

// Validate validates progress configuration
func (p *ProgressConfig) Validate() error {
	switch p.Mode {
	case ProgressAuto, ProgressBar, ProgressLine, ProgressNone:
	default:
		return fmt.Errorf("PROGRESS_MODE must be one of auto, bar, line, none (got %q)", p.Mode)
	}
	if p.Interval < 0 {
		return fmt.Errorf("PROGRESS_INTERVAL cannot be negative")
	}
	return nil
}

// applyDefaults applies environment-specific defaults
func (c *Config) applyDefaults() {
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = fmt.Sprintf("%s/%s", c.ServiceName, c.Version)
	}

	if c.IsProduction() && c.LogLevel == "debug" {
		c.LogLevel = "info"
	}
}

// S3Enabled reports whether enough S3 settings exist to build a client.
// Credentials may still come from the default AWS chain.
func (c *Config) S3Enabled() bool {
	return c.Storage.S3.Region != "" || c.Storage.S3.Endpoint != ""
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}
