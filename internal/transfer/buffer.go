package transfer

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrShortWrite aborts a transfer when the sink consumed fewer bytes
	// than it was given.
	ErrShortWrite = io.ErrShortWrite

	// ErrBufferReleased is returned when writing to a released Buffer.
	ErrBufferReleased = errors.New("transfer: buffer released")
)

// Buffer accumulates the body of one request in delivery order. It has a
// single owner and is not safe for concurrent use.
type Buffer struct {
	data     []byte
	released bool
}

// NewBuffer returns an empty Buffer. sizeHint preallocates capacity when
// positive.
func NewBuffer(sizeHint int64) *Buffer {
	b := &Buffer{}
	if sizeHint > 0 && sizeHint <= maxPrealloc {
		b.data = make([]byte, 0, sizeHint)
	}
	return b
}

const maxPrealloc = 64 << 20

// Write appends p and returns the number of bytes consumed.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.released {
		return 0, ErrBufferReleased
	}
	b.data = append(b.data, p...)
	return len(p), nil
}

// Bytes returns the accumulated content. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of accumulated bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Release drops the content. Later writes fail with ErrBufferReleased.
func (b *Buffer) Release() {
	b.data = nil
	b.released = true
}

// Drain pulls every chunk from src, writes it to sink and calls onProgress
// after each chunk. It returns the number of bytes written.
//
// A sink that consumes fewer bytes than provided aborts the transfer with
// ErrShortWrite.
func Drain(src Source, sink io.Writer, onProgress func(Progress)) (int64, error) {
	var written int64
	for {
		chunk, err := src.Next()
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, err
		}

		n, werr := sink.Write(chunk)
		written += int64(n)
		if werr != nil {
			return written, fmt.Errorf("sink write failed: %w", werr)
		}
		if n < len(chunk) {
			return written, fmt.Errorf("%w: consumed %d of %d bytes", ErrShortWrite, n, len(chunk))
		}

		if onProgress != nil {
			onProgress(src.Progress())
		}
	}
}
