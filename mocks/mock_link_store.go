package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fetchlink/internal/transfer"
)

// MockLinkStore is a mock implementation of store.LinkStore
type MockLinkStore struct {
	mock.Mock
}

func (m *MockLinkStore) StoreLink(ctx context.Context, path string, buf *transfer.Buffer) error {
	args := m.Called(ctx, path, buf)
	return args.Error(0)
}
