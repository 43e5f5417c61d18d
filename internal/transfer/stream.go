package transfer

import (
	"errors"
	"io"

	"fetchlink/internal/domain"
)

var (
	// ErrStreamClosed is returned by Next after Close.
	ErrStreamClosed = errors.New("transfer: stream closed")

	// ErrSizeExceeded is returned when the body is larger than the
	// configured maximum.
	ErrSizeExceeded = errors.New("transfer: response exceeds maximum size")
)

// Progress is the byte accounting of a transfer. Total and UploadTotal are 0
// when unknown.
type Progress struct {
	Downloaded  int64
	Total       int64
	Uploaded    int64
	UploadTotal int64
}

// Known reports whether the expected download size is known.
func (p Progress) Known() bool {
	return p.Total > 0
}

// Percent returns the completed fraction in [0, 100], or 0 when the total is
// unknown.
func (p Progress) Percent() float64 {
	if !p.Known() {
		return 0
	}
	pct := float64(p.Downloaded) / float64(p.Total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Source produces chunks on demand.
type Source interface {
	Next() ([]byte, error)
	Progress() Progress
}

// StreamOptions describes the body wrapped by a Stream.
type StreamOptions struct {
	Total       int64 // negative or 0 when unknown
	ContentType string
	MaxSize     int64
	ChunkSize   int
}

// Stream is a lazy, finite and non-restartable sequence of body chunks.
// It is not safe for concurrent use.
type Stream struct {
	body        io.ReadCloser
	buf         []byte
	progress    Progress
	contentType string
	maxSize     int64
	err         error
	closed      bool
}

// NewStream wraps body. The stream takes ownership of body.
func NewStream(body io.ReadCloser, opts StreamOptions) *Stream {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	total := opts.Total
	if total < 0 {
		total = 0
	}

	return &Stream{
		body:        body,
		buf:         make([]byte, opts.ChunkSize),
		progress:    Progress{Total: total},
		contentType: opts.ContentType,
		maxSize:     opts.MaxSize,
	}
}

// Next returns the next chunk of the body. The returned slice is only valid
// until the following call. Next returns io.EOF once the body is exhausted
// and keeps returning the same terminal error on later calls.
func (s *Stream) Next() ([]byte, error) {
	if s.closed {
		return nil, ErrStreamClosed
	}
	if s.err != nil {
		return nil, s.err
	}

	for {
		n, err := s.body.Read(s.buf)
		if n > 0 {
			s.progress.Downloaded += int64(n)
			if s.maxSize > 0 && s.progress.Downloaded > s.maxSize {
				s.err = ErrSizeExceeded
				return nil, s.err
			}
			if err != nil {
				s.err = classifyReadError(err)
			}
			return s.buf[:n], nil
		}
		if err != nil {
			s.err = classifyReadError(err)
			return nil, s.err
		}
	}
}

// Progress returns the current byte accounting.
func (s *Stream) Progress() Progress {
	return s.progress
}

// ContentType returns the Content-Type announced by the server.
func (s *Stream) ContentType() string {
	return s.contentType
}

// Close releases the underlying connection. It is safe to call more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}

func classifyReadError(err error) error {
	if err == io.EOF {
		return io.EOF
	}
	return domain.NewNetworkError("failed to read response body", err)
}
