package transfer

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fetchlink/internal/domain"
)

type trackingCloser struct {
	io.Reader
	closes int
}

func (c *trackingCloser) Close() error {
	c.closes++
	return nil
}

type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestStream_NotRestartable(t *testing.T) {
	body := &trackingCloser{Reader: strings.NewReader("abc")}
	stream := NewStream(body, StreamOptions{Total: 3, ChunkSize: 2})

	chunk, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "ab", string(chunk))

	chunk, err = stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "c", string(chunk))

	for i := 0; i < 3; i++ {
		_, err = stream.Next()
		assert.Equal(t, io.EOF, err)
	}

	require.NoError(t, stream.Close())
	require.NoError(t, stream.Close())
	assert.Equal(t, 1, body.closes)

	_, err = stream.Next()
	assert.ErrorIs(t, err, ErrStreamClosed)
}

func TestStream_ReadErrorIsNetworkError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	body := io.NopCloser(&failingReader{data: []byte("partial"), err: cause})
	stream := NewStream(body, StreamOptions{})

	chunk, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "partial", string(chunk))

	_, err = stream.Next()
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNetwork))
	assert.ErrorIs(t, err, cause)

	_, again := stream.Next()
	assert.Equal(t, err, again)
}

func TestStream_NegativeTotalIsUnknown(t *testing.T) {
	stream := NewStream(io.NopCloser(strings.NewReader("")), StreamOptions{Total: -1})
	assert.Equal(t, int64(0), stream.Progress().Total)

	_, err := stream.Next()
	assert.Equal(t, io.EOF, err)
}

func TestProgress_Percent(t *testing.T) {
	tests := []struct {
		name     string
		progress Progress
		expected float64
	}{
		{"unknown total", Progress{Downloaded: 100}, 0},
		{"half", Progress{Downloaded: 50, Total: 100}, 50},
		{"complete", Progress{Downloaded: 100, Total: 100}, 100},
		{"over announced", Progress{Downloaded: 150, Total: 100}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.progress.Percent(), 0.001)
		})
	}
}
