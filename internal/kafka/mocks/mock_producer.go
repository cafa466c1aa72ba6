package mocks

import (
	"cod-fraud-system/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockProducer является моком для kafka.Producer интерфейса
type MockProducer struct {
	mock.Mock
}

// SendOrderEvent мок для SendOrderEvent
func (m *MockProducer) SendOrderEvent(event *models.OrderEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// SendVerdictEvent мок для SendVerdictEvent
func (m *MockProducer) SendVerdictEvent(event *models.VerdictEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// Close мок для Close
func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
