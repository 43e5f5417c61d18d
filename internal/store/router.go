package store

import (
	"context"
	"strings"

	"fetchlink/internal/domain"
	"fetchlink/internal/transfer"
)

// Router dispatches to the S3 store for s3:// destinations and to the file
// store otherwise.
type Router struct {
	file LinkStore
	s3   LinkStore
}

// NewRouter builds a Router. s3 may be nil when S3 is not configured.
func NewRouter(file, s3 LinkStore) *Router {
	return &Router{file: file, s3: s3}
}

// StoreLink stores buf with the backend matching path. An s3:// path with no
// S3 store configured fails with an IO error.
func (r *Router) StoreLink(ctx context.Context, path string, buf *transfer.Buffer) error {
	if strings.HasPrefix(path, S3Scheme) {
		if r.s3 == nil {
			return domain.NewIOError("S3 destinations require STORAGE_S3_REGION, AWS_REGION or S3_ENDPOINT to be set", nil)
		}
		return r.s3.StoreLink(ctx, path, buf)
	}
	return r.file.StoreLink(ctx, path, buf)
}
