package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"fetchlink/internal/domain"
	"fetchlink/internal/transfer"
	"fetchlink/observability/types"
)

// FileStore writes links to the local filesystem. Parent directories are
// never created.
type FileStore struct {
	perm    os.FileMode
	logger  types.Logger
	metrics types.Metrics
}

// NewFileStore creates a FileStore that writes files with mode 0644.
//
// Parameters:
//   - logger: Logger for store events; a "store" field is added to every entry
//   - metrics: Collector receiving duration, success and error counts for
//     the "store" operation
//
// Returns:
//   - A FileStore ready to use as a LinkStore
//
// Example:
//
//	fs := store.NewFileStore(obs.Logger("store.file"), obs.Metrics("store.file"))
//	err := fs.StoreLink(ctx, "/tmp/report.pdf", buf)
func NewFileStore(logger types.Logger, metrics types.Metrics) *FileStore {
	return &FileStore{
		perm:    0o644,
		logger:  logger.WithFields(types.Fields{"store": "filesystem"}),
		metrics: metrics,
	}
}

// StoreLink truncates or creates the file at path, writes the whole buffer,
// syncs and closes it. Every failure is a domain IO error.
func (s *FileStore) StoreLink(ctx context.Context, path string, buf *transfer.Buffer) error {
	start := time.Now()
	defer func() {
		s.metrics.RecordDuration(operationStore, time.Since(start).Seconds())
	}()

	if err := s.write(path, buf.Bytes()); err != nil {
		s.metrics.RecordError(operationStore, domain.MetricLabel(err))
		s.logger.Error(ctx, "Failed to store link", err, types.Fields{
			"path": path,
		})
		return err
	}

	s.metrics.RecordSuccess(operationStore)
	s.logger.Debug(ctx, "Link stored", types.Fields{
		"path":        path,
		"size":        buf.Len(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (s *FileStore) write(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, s.perm)
	if err != nil {
		return domain.NewIOError(fmt.Sprintf("cannot open %s", path), err)
	}

	n, err := file.Write(data)
	if err == nil && n < len(data) {
		err = fmt.Errorf("wrote %d of %d bytes", n, len(data))
	}
	if err != nil {
		file.Close()
		return domain.NewIOError(fmt.Sprintf("cannot write %s", path), err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return domain.NewIOError(fmt.Sprintf("cannot flush %s", path), err)
	}

	if err := file.Close(); err != nil {
		return domain.NewIOError(fmt.Sprintf("cannot close %s", path), err)
	}
	return nil
}
