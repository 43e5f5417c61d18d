package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewNetworkError("failed to connect", cause)
	assert.Equal(t, "NETWORK_ERROR: failed to connect: connection refused", err.Error())

	usage := NewUsageError("missing URL")
	assert.Equal(t, "USAGE_ERROR: missing URL", usage.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("store: %w", NewIOError("write failed", cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrIO)
	assert.NotErrorIs(t, err, ErrNetwork)
}

func TestError_IsHTTPStatus(t *testing.T) {
	err := NewHTTPError(http.StatusNotFound)

	assert.ErrorIs(t, err, ErrHTTP)
	assert.ErrorIs(t, err, NewHTTPError(http.StatusNotFound))
	assert.NotErrorIs(t, err, NewHTTPError(http.StatusInternalServerError))
	assert.Contains(t, err.Error(), "404 Not Found")
	assert.Equal(t, http.StatusNotFound, err.Status)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"network", NewNetworkError("x", nil), KindNetwork},
		{"http", NewHTTPError(500), KindHTTP},
		{"io", NewIOError("x", nil), KindIO},
		{"usage", NewUsageError("x"), KindUsage},
		{"wrapped", fmt.Errorf("outer: %w", NewIOError("x", nil)), KindIO},
		{"plain", errors.New("plain"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
			assert.True(t, IsKind(tt.err, tt.expected))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(NewUsageError("missing")))
	assert.Equal(t, ExitFailure, ExitCode(NewNetworkError("x", nil)))
	assert.Equal(t, ExitFailure, ExitCode(NewHTTPError(403)))
	assert.Equal(t, ExitFailure, ExitCode(NewIOError("x", nil)))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("unclassified")))
}

func TestMetricLabel(t *testing.T) {
	assert.Equal(t, "network", MetricLabel(NewNetworkError("x", nil)))
	assert.Equal(t, "http_502", MetricLabel(NewHTTPError(502)))
	assert.Equal(t, "io", MetricLabel(NewIOError("x", nil)))
	assert.Equal(t, "usage", MetricLabel(NewUsageError("x")))
	assert.Equal(t, "unknown", MetricLabel(errors.New("x")))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "network_error", KindNetwork.String())
	assert.Equal(t, "http_error", KindHTTP.String())
	assert.Equal(t, "io_error", KindIO.String())
	assert.Equal(t, "usage_error", KindUsage.String())
	assert.Equal(t, "unknown_error", KindUnknown.String())
}

func TestTransferRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		dest    string
		wantErr bool
	}{
		{"valid https", "https://example.com/file.bin", "out.bin", false},
		{"valid http", "http://localhost:8080/x", "out", false},
		{"missing url", "", "out", true},
		{"ftp scheme", "ftp://example.com/file", "out", true},
		{"relative url", "/just/a/path", "out", true},
		{"no host", "http:///path", "out", true},
		{"missing destination", "https://example.com", "", true},
		{"blank destination", "https://example.com", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewTransferRequest(tt.url, tt.dest)
			err := req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindUsage))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTransferRequest(t *testing.T) {
	a := NewTransferRequest("  https://example.com/a  ", "a.out")
	b := NewTransferRequest("https://example.com/a", "a.out")

	assert.Equal(t, "https://example.com/a", a.URL)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestState(t *testing.T) {
	assert.True(t, CanTransition(StateIdle, StateFetching))
	assert.True(t, CanTransition(StateFetching, StateStoring))
	assert.True(t, CanTransition(StateFetching, StateFailed))
	assert.True(t, CanTransition(StateStoring, StateDone))
	assert.True(t, CanTransition(StateStoring, StateFailed))

	assert.False(t, CanTransition(StateIdle, StateDone))
	assert.False(t, CanTransition(StateDone, StateFetching))
	assert.False(t, CanTransition(StateFailed, StateIdle))

	assert.True(t, StateDone.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateStoring.Terminal())
	assert.Equal(t, "storing", StateStoring.String())
}
