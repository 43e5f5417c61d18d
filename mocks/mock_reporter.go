package mocks

import (
	"github.com/stretchr/testify/mock"

	"fetchlink/internal/transfer"
)

// MockReporter is a mock implementation of progress.Reporter
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Update(p transfer.Progress) {
	m.Called(p)
}

func (m *MockReporter) Finish(err error) {
	m.Called(err)
}
