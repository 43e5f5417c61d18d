package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fetchlink/internal/transfer"
)

// MockTransport is a mock implementation of usecase.Transport
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Fetch(ctx context.Context, url string) (*transfer.Stream, error) {
	args := m.Called(ctx, url)

	var stream *transfer.Stream
	if args.Get(0) != nil {
		stream = args.Get(0).(*transfer.Stream)
	}
	return stream, args.Error(1)
}
