package usecase

import (
	"context"

	"fetchlink/internal/transfer"
	"fetchlink/observability/types"
)

// Transport opens the body stream of a URL.
type Transport interface {
	Fetch(ctx context.Context, url string) (*transfer.Stream, error)
}

// Observability hands out scoped loggers and metrics.
type Observability interface {
	Logger(component string) types.Logger
	Metrics(component string) types.Metrics
}
