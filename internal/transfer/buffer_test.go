package transfer

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	chunks   []string
	progress Progress
}

func (s *sliceSource) Next() ([]byte, error) {
	if len(s.chunks) == 0 {
		return nil, io.EOF
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	s.progress.Downloaded += int64(len(chunk))
	return []byte(chunk), nil
}

func (s *sliceSource) Progress() Progress {
	return s.progress
}

// shortSink consumes at most limit bytes per write.
type shortSink struct {
	limit int
}

func (s shortSink) Write(p []byte) (int, error) {
	if len(p) > s.limit {
		return s.limit, nil
	}
	return len(p), nil
}

type errSink struct{ err error }

func (s errSink) Write(p []byte) (int, error) { return 0, s.err }

func TestDrain_ConcatenatesInOrder(t *testing.T) {
	chunks := []string{"alpha-", "beta-", "", "gamma"}
	src := &sliceSource{chunks: append([]string(nil), chunks...), progress: Progress{Total: 16}}
	buf := NewBuffer(16)

	var updates []Progress
	n, err := Drain(src, buf, func(p Progress) { updates = append(updates, p) })
	require.NoError(t, err)

	assert.Equal(t, strings.Join(chunks, ""), string(buf.Bytes()))
	assert.Equal(t, int64(buf.Len()), n)
	require.Len(t, updates, len(chunks))
	assert.Equal(t, int64(16), updates[len(updates)-1].Downloaded)
	assert.Equal(t, int64(16), updates[len(updates)-1].Total)
}

func TestDrain_ShortWriteAborts(t *testing.T) {
	src := &sliceSource{chunks: []string{"abc", "defgh", "ij"}}

	calls := 0
	n, err := Drain(src, shortSink{limit: 4}, func(Progress) { calls++ })

	assert.ErrorIs(t, err, ErrShortWrite)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, 1, calls)
	assert.Len(t, src.chunks, 1, "no chunk is pulled after the abort")
}

func TestDrain_SinkError(t *testing.T) {
	cause := errors.New("no space left on device")
	_, err := Drain(&sliceSource{chunks: []string{"a"}}, errSink{err: cause}, nil)
	assert.ErrorIs(t, err, cause)
}

func TestBuffer_Release(t *testing.T) {
	buf := NewBuffer(4)
	n, err := buf.Write([]byte("data"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	buf.Release()
	assert.Equal(t, 0, buf.Len())
	assert.Nil(t, buf.Bytes())

	n, err = buf.Write([]byte("more"))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, ErrBufferReleased)
}

func TestNewBuffer_IgnoresHugeHint(t *testing.T) {
	buf := NewBuffer(1 << 40)
	assert.Equal(t, 0, cap(buf.Bytes()))
}
