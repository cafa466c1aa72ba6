package mocks

import (
	"cod-fraud-system/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockVerdictRepository является моком для storage.VerdictRepository интерфейса
type MockVerdictRepository struct {
	mock.Mock
}

// SaveVerdict мок для SaveVerdict
func (m *MockVerdictRepository) SaveVerdict(sessionID string, verdict *models.Verdict) error {
	args := m.Called(sessionID, verdict)
	return args.Error(0)
}

// GetVerdict мок для GetVerdict
func (m *MockVerdictRepository) GetVerdict(sessionID string, orderID int64) (*models.Verdict, error) {
	args := m.Called(sessionID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Verdict), args.Error(1)
}

// ListVerdicts мок для ListVerdicts
func (m *MockVerdictRepository) ListVerdicts(sessionID string, limit int) ([]*models.Verdict, error) {
	args := m.Called(sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Verdict), args.Error(1)
}

// CountVerdicts мок для CountVerdicts
func (m *MockVerdictRepository) CountVerdicts(sessionID string) (*models.VerdictStats, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerdictStats), args.Error(1)
}

// ClearAllVerdicts мок для ClearAllVerdicts
func (m *MockVerdictRepository) ClearAllVerdicts() error {
	args := m.Called()
	return args.Error(0)
}
