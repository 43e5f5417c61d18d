// Package transfer issues HTTP GET requests and exposes the response body as
// a lazy, finite stream of chunks.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fetchlink/config"
	"fetchlink/internal/domain"
	"fetchlink/observability/types"
)

const operationRequest = "request"

// DefaultChunkSize is the maximum size of a chunk returned by Stream.Next.
const DefaultChunkSize = 32 * 1024

// ClientConfig holds HTTP client configuration
type ClientConfig struct {
	Timeout   time.Duration
	UserAgent string
	MaxSize   int64 // 0 means unlimited
	ChunkSize int
}

// DefaultConfig returns default HTTP client configuration
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Timeout:   120 * time.Second,
		UserAgent: "fetchlink/1.0.0",
		ChunkSize: DefaultChunkSize,
	}
}

// Client fetches a single URL per call. It never retries.
type Client struct {
	client  *http.Client
	config  ClientConfig
	logger  types.Logger
	metrics types.Metrics
}

// NewClient creates a new HTTP client.
//
// Zero values in cfg fall back to DefaultConfig: Timeout, UserAgent and
// ChunkSize. A zero MaxSize means no limit.
//
// Example:
//
//	client := transfer.NewClient(transfer.ClientConfig{Timeout: 30 * time.Second}).
//		WithLogger(obs.Logger("transfer")).
//		WithMetrics(obs.Metrics("transfer"))
//	stream, err := client.Fetch(ctx, "https://example.com/report.pdf")
func NewClient(cfg ClientConfig) *Client {
	return NewClientWithHTTP(cfg, nil)
}

// NewClientFromConfig builds a Client from the application HTTP settings.
func NewClientFromConfig(cfg config.HTTPConfig) *Client {
	return NewClient(ClientConfig{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		MaxSize:   cfg.MaxSize,
	})
}

// NewClientWithHTTP uses hc instead of a fresh http.Client. The configured
// timeout is applied to hc.
func NewClientWithHTTP(cfg ClientConfig, hc *http.Client) *Client {
	defaults := DefaultConfig()
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaults.ChunkSize
	}
	if hc == nil {
		hc = &http.Client{}
	}
	hc.Timeout = cfg.Timeout

	return &Client{
		client: hc,
		config: cfg,
	}
}

// WithLogger traces requests and responses at debug level.
func (c *Client) WithLogger(logger types.Logger) *Client {
	c.logger = logger
	return c
}

// WithMetrics records request latency and failures.
func (c *Client) WithMetrics(metrics types.Metrics) *Client {
	c.metrics = metrics
	return c
}

// Config returns the effective client configuration.
func (c *Client) Config() ClientConfig {
	return c.config
}

// Fetch sends a GET request for rawURL and returns the response body as a
// Stream. The caller must Close the stream.
//
// Connection, DNS and timeout failures are reported as domain network
// errors, non-2xx responses as domain HTTP errors carrying the status.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.NewUsageError(fmt.Sprintf("invalid URL %q: %v", rawURL, err))
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	c.debug(ctx, "Sending request", types.Fields{"url": rawURL})

	start := time.Now()
	resp, err := c.client.Do(req)
	if c.metrics != nil {
		c.metrics.RecordDuration(operationRequest, time.Since(start).Seconds())
	}
	if err != nil {
		return nil, c.failed(domain.NewNetworkError("request failed", unwrapURLError(err)))
	}

	c.debug(ctx, "Response received", types.Fields{
		"url":            rawURL,
		"status":         resp.StatusCode,
		"content_length": resp.ContentLength,
		"content_type":   resp.Header.Get("Content-Type"),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, c.failed(domain.NewHTTPError(resp.StatusCode))
	}

	if c.config.MaxSize > 0 && resp.ContentLength > c.config.MaxSize {
		resp.Body.Close()
		return nil, c.failed(fmt.Errorf("%w: announced %d bytes, limit %d", ErrSizeExceeded, resp.ContentLength, c.config.MaxSize))
	}

	if c.metrics != nil {
		c.metrics.RecordSuccess(operationRequest)
	}

	return NewStream(resp.Body, StreamOptions{
		Total:       resp.ContentLength,
		ContentType: resp.Header.Get("Content-Type"),
		MaxSize:     c.config.MaxSize,
		ChunkSize:   c.config.ChunkSize,
	}), nil
}

func (c *Client) failed(err error) error {
	if c.metrics != nil {
		c.metrics.RecordError(operationRequest, domain.MetricLabel(err))
	}
	return err
}

func (c *Client) debug(ctx context.Context, msg string, fields types.Fields) {
	if c.logger != nil {
		c.logger.Debug(ctx, msg, fields)
	}
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the
// method and URL already present in the log fields.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}
