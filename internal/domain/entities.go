package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransferRequest is one invocation's work: fetch URL, store at Destination.
type TransferRequest struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Destination string `json:"destination"`
}

// NewTransferRequest builds a request with a fresh identifier.
func NewTransferRequest(rawURL, destination string) TransferRequest {
	return TransferRequest{
		ID:          uuid.NewString(),
		URL:         strings.TrimSpace(rawURL),
		Destination: destination,
	}
}

// Validate checks the URL is absolute http(s) and a destination is given.
func (r TransferRequest) Validate() error {
	if r.URL == "" {
		return NewUsageError("missing URL")
	}

	u, err := url.Parse(r.URL)
	if err != nil {
		return NewUsageError("invalid URL: " + err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewUsageError("only http and https URLs are supported")
	}
	if u.Host == "" {
		return NewUsageError("URL has no host")
	}

	if strings.TrimSpace(r.Destination) == "" {
		return NewUsageError("missing destination path")
	}
	return nil
}

// TransferResult summarizes a completed transfer.
type TransferResult struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Destination string    `json:"destination"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Checksum    string    `json:"checksum"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Duration is the wall time of the transfer.
func (r TransferResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
