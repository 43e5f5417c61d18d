// Package types holds the observability contracts shared by the logger,
// metrics and provider packages.
package types

import (
	"context"
	"io"
)

// Logger defines the contract for structured logging.
// Implementations produce one JSON object per entry. All methods are
// context-aware so request identifiers can be attached automatically.
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, fields Fields)

	// Error logs an error message with the associated error.
	Error(ctx context.Context, msg string, err error, fields Fields)

	// Warn logs a warning message.
	// Use for potentially harmful situations that don't prevent operation.
	Warn(ctx context.Context, msg string, fields Fields)

	// Debug logs a debug message.
	// These messages are filtered out unless the level is "debug".
	Debug(ctx context.Context, msg string, fields Fields)

	// WithFields returns a new Logger that includes fields in every entry.
	WithFields(fields Fields) Logger
}

// Metrics defines the contract for metrics collection.
// Implementations provide Prometheus-compatible metrics.
type Metrics interface {
	// RecordSuccess increments the success counter for an operation type.
	RecordSuccess(operationType string)

	// RecordError increments the error counter for an operation and error type.
	//
	// Parameters:
	//   - operationType: The type of operation that failed (e.g., "fetch", "store")
	//   - errorType: The category of error (e.g., "network", "http_404", "io")
	RecordError(operationType string, errorType string)

	// RecordDuration records the duration of an operation in seconds.
	RecordDuration(operation string, duration float64)

	// RecordFileSize records the size of a transferred payload in bytes.
	RecordFileSize(fileType string, bytes int64)

	// StartOperation increments the in-progress gauge for an operation.
	// Must be paired with EndOperation.
	StartOperation(operation string)

	// EndOperation decrements the in-progress gauge for an operation.
	EndOperation(operation string)
}

// Fields represents structured logging fields as key-value pairs.
// Values can be any JSON-serializable type.
type Fields map[string]interface{}

// Config holds observability configuration for the provider.
type Config struct {
	// ServiceName identifies the service in logs and prefixes metric names.
	ServiceName string

	// Environment specifies the deployment environment.
	Environment string

	// LogLevel sets the minimum log level to output.
	// Valid values: "debug", "info", "warn", "error".
	LogLevel string

	// LogOutput specifies where logs are written. Defaults to os.Stderr
	// so that log lines never mix with command output on stdout.
	LogOutput io.Writer

	// AdditionalFields are included in every log entry.
	AdditionalFields Fields
}

// Provider manages the lifecycle of observability components.
// Each component gets its own Logger and Metrics instances.
type Provider interface {
	// Logger returns the Logger for the specified component.
	// Multiple calls with the same component name return the same instance.
	Logger(component string) Logger

	// Metrics returns the Metrics collector for the specified component.
	// Multiple calls with the same component name return the same instance.
	Metrics(component string) Metrics

	// WriteMetrics writes every collected metric to path in the
	// Prometheus text exposition format.
	WriteMetrics(path string) error

	// Close releases resources held by the provider.
	Close() error
}

type contextKey string

// RequestIDKey is the context key under which the request identifier is stored.
const RequestIDKey contextKey = "request_id"

// WithRequestID returns a copy of ctx carrying the request identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID extracts the request identifier from ctx, if any.
func RequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok
}
