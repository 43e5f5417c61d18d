package config

import "time"

// DefaultHTTPConfig returns sensible defaults for HTTP client configuration
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout:   120 * time.Second,
		UserAgent: "fetchlink/1.0.0",
	}
}

// DefaultStorageConfig returns sensible defaults for storage configuration
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}

// DefaultProgressConfig returns sensible defaults for progress display
func DefaultProgressConfig() ProgressConfig {
	return ProgressConfig{
		Mode:     ProgressAuto,
		Interval: 200 * time.Millisecond,
	}
}

// DefaultConfig returns a complete configuration with sensible defaults.
// This is useful for testing or when you want to start with defaults and override specific parts
func DefaultConfig() *Config {
	return &Config{
		Environment: "local",
		ServiceName: "fetchlink",
		LogLevel:    "warn",
		Version:     "1.0.0",

		HTTP:     DefaultHTTPConfig(),
		Storage:  DefaultStorageConfig(),
		Progress: DefaultProgressConfig(),
	}
}
