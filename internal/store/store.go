// Package store persists a fetched body at its destination: a local file
// or an S3 object.
package store

import (
	"context"

	"fetchlink/internal/transfer"
)

// LinkStore persists the content of buf at path, replacing whatever was
// there before.
type LinkStore interface {
	StoreLink(ctx context.Context, path string, buf *transfer.Buffer) error
}

const operationStore = "store"
