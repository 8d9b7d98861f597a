package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// PublisherMock implements telemetry.Publisher for handler and emitter
// tests, recording lifecycle events instead of touching a broker.
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
