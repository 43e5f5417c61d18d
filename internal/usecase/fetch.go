// Package usecase orchestrates a single transfer: fetch the URL into a
// buffer while reporting progress, then persist the buffer.
package usecase

import (
	"context"
	"time"

	"fetchlink/internal/domain"
	"fetchlink/internal/domain/util"
	"fetchlink/internal/progress"
	"fetchlink/internal/store"
	"fetchlink/internal/transfer"
	"fetchlink/observability/types"
)

const (
	component      = "usecase.fetch"
	operationFetch = "fetch"
)

// Fetcher runs transfers through Idle → Fetching → Storing → Done, or into
// Failed from Fetching or Storing. It is not safe for concurrent use.
type Fetcher struct {
	transport Transport
	store     store.LinkStore
	reporter  progress.Reporter
	logger    types.Logger
	metrics   types.Metrics
	now       func() time.Time
	state     domain.State
}

// NewFetcher wires a Fetcher. A nil reporter disables progress output.
func NewFetcher(
	transport Transport,
	linkStore store.LinkStore,
	reporter progress.Reporter,
	obs Observability,
) *Fetcher {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Fetcher{
		transport: transport,
		store:     linkStore,
		reporter:  reporter,
		logger:    obs.Logger(component),
		metrics:   obs.Metrics(component),
		now:       time.Now,
		state:     domain.StateIdle,
	}
}

// State returns the state reached by the last Execute.
func (f *Fetcher) State() domain.State {
	return f.state
}

// Execute downloads req.URL and stores it at req.Destination. The returned
// error is always classified by a domain.Kind, except for ErrShortWrite and
// ErrSizeExceeded from the transfer package.
func (f *Fetcher) Execute(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	f.state = domain.StateIdle
	ctx = types.WithRequestID(ctx, req.ID)

	f.metrics.StartOperation(operationFetch)
	defer f.metrics.EndOperation(operationFetch)
	startedAt := f.now()
	defer func() {
		f.metrics.RecordDuration(operationFetch, f.now().Sub(startedAt).Seconds())
	}()

	if err := req.Validate(); err != nil {
		return nil, f.fail(ctx, req, req.Destination, err)
	}

	f.transition(ctx, domain.StateFetching)
	f.logger.Info(ctx, "Starting transfer", types.Fields{
		"url":         req.URL,
		"destination": req.Destination,
	})

	stream, err := f.transport.Fetch(ctx, req.URL)
	if err != nil {
		return nil, f.fail(ctx, req, req.Destination, ErrFetchFailed(req.URL, err))
	}
	defer stream.Close()

	buf := transfer.NewBuffer(stream.Progress().Total)
	defer buf.Release()

	size, err := transfer.Drain(stream, buf, f.reporter.Update)
	f.reporter.Finish(err)
	if err != nil {
		return nil, f.fail(ctx, req, req.Destination, ErrTransferAborted(req.URL, err))
	}
	stream.Close()

	contentType := stream.ContentType()
	dest := store.DerivePath(req.Destination, req.URL, contentType)

	f.transition(ctx, domain.StateStoring)
	if err := f.store.StoreLink(ctx, dest, buf); err != nil {
		return nil, f.fail(ctx, req, dest, ErrStoreFailed(dest, err))
	}

	result := &domain.TransferResult{
		ID:          req.ID,
		URL:         req.URL,
		Destination: dest,
		Size:        size,
		ContentType: contentType,
		Checksum:    util.CalculateHash(buf.Bytes()),
		StartedAt:   startedAt,
		FinishedAt:  f.now(),
	}

	f.transition(ctx, domain.StateDone)
	f.metrics.RecordSuccess(operationFetch)
	f.metrics.RecordFileSize(util.FileType(req.URL, contentType), size)

	f.logger.Info(ctx, "Transfer completed", types.Fields{
		"url":         req.URL,
		"destination": dest,
		"size":        size,
		"checksum":    result.Checksum,
		"duration_ms": result.Duration().Milliseconds(),
	})

	return result, nil
}

// fail moves the transfer to Failed. dest is the resolved destination once
// known, otherwise the requested one.
func (f *Fetcher) fail(ctx context.Context, req domain.TransferRequest, dest string, err error) error {
	f.transition(ctx, domain.StateFailed)
	f.metrics.RecordError(operationFetch, domain.MetricLabel(err))
	f.logger.Error(ctx, "Transfer failed", err, types.Fields{
		"url":         req.URL,
		"destination": dest,
		"error_kind":  domain.KindOf(err).String(),
	})
	return err
}

func (f *Fetcher) transition(ctx context.Context, to domain.State) {
	from := f.state
	if !domain.CanTransition(from, to) {
		f.logger.Warn(ctx, "Unexpected state transition", types.Fields{
			"from": from.String(),
			"to":   to.String(),
		})
	}
	f.state = to
	f.logger.Debug(ctx, "State transition", types.Fields{
		"from": from.String(),
		"to":   to.String(),
	})
}
