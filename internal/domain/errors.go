package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures surfaced to the user.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindHTTP
	KindIO
	KindUsage
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network_error"
	case KindHTTP:
		return "http_error"
	case KindIO:
		return "io_error"
	case KindUsage:
		return "usage_error"
	default:
		return "unknown_error"
	}
}

// Error is a classified failure. It wraps the underlying cause, if any.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Status  int // HTTP status code, KindHTTP only
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind, and on Status when the target carries one, so that
// errors.Is(err, ErrHTTP) holds for any HTTP failure and
// errors.Is(err, NewHTTPError(404)) only for a 404.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Status == 0 || t.Status == e.Status
}

// Sentinels for errors.Is checks
var (
	ErrNetwork = &Error{Kind: KindNetwork, Code: "NETWORK_ERROR", Message: "network failure"}
	ErrHTTP    = &Error{Kind: KindHTTP, Code: "HTTP_ERROR", Message: "unexpected HTTP status"}
	ErrIO      = &Error{Kind: KindIO, Code: "IO_ERROR", Message: "local write failure"}
	ErrUsage   = &Error{Kind: KindUsage, Code: "USAGE_ERROR", Message: "invalid arguments"}
)

// NewNetworkError reports a connection, DNS or read failure.
func NewNetworkError(message string, err error) *Error {
	return &Error{Kind: KindNetwork, Code: ErrNetwork.Code, Message: message, Err: err}
}

// NewHTTPError reports a non-2xx response.
func NewHTTPError(status int) *Error {
	msg := fmt.Sprintf("unexpected HTTP status %d", status)
	if text := http.StatusText(status); text != "" {
		msg = fmt.Sprintf("%s %s", msg, text)
	}
	return &Error{Kind: KindHTTP, Code: ErrHTTP.Code, Message: msg, Status: status}
}

// NewIOError reports a failure writing the destination.
func NewIOError(message string, err error) *Error {
	return &Error{Kind: KindIO, Code: ErrIO.Code, Message: message, Err: err}
}

// NewUsageError reports bad or missing command line arguments.
func NewUsageError(message string) *Error {
	return &Error{Kind: KindUsage, Code: ErrUsage.Code, Message: message}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is classified as k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// Exit codes returned by the command line.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsKind(err, KindUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// MetricLabel returns a low-cardinality label describing err.
func MetricLabel(err error) string {
	var de *Error
	if !errors.As(err, &de) {
		return "unknown"
	}
	switch de.Kind {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return fmt.Sprintf("http_%d", de.Status)
	case KindIO:
		return "io"
	case KindUsage:
		return "usage"
	default:
		return "unknown"
	}
}
