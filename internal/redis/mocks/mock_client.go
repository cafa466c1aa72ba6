package mocks

import (
	"cod-fraud-system/internal/fraud"
	"cod-fraud-system/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClientInterface является моком для redis.ClientInterface интерфейса
type MockClientInterface struct {
	mock.Mock
}

// SeenIPs мок для SeenIPs
func (m *MockClientInterface) SeenIPs(sessionID string) fraud.IPHistory {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(fraud.IPHistory)
}

// SaveVerdict мок для SaveVerdict
func (m *MockClientInterface) SaveVerdict(sessionID string, verdict *models.Verdict) error {
	args := m.Called(sessionID, verdict)
	return args.Error(0)
}

// GetVerdict мок для GetVerdict
func (m *MockClientInterface) GetVerdict(sessionID string, orderID int64) (*models.Verdict, error) {
	args := m.Called(sessionID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Verdict), args.Error(1)
}

// IncrementVerdictStats мок для IncrementVerdictStats
func (m *MockClientInterface) IncrementVerdictStats(flagged bool) error {
	args := m.Called(flagged)
	return args.Error(0)
}

// GetVerdictStats мок для GetVerdictStats
func (m *MockClientInterface) GetVerdictStats() (int64, int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// ClearSessionData мок для ClearSessionData
func (m *MockClientInterface) ClearSessionData() error {
	args := m.Called()
	return args.Error(0)
}

// Close мок для Close
func (m *MockClientInterface) Close() error {
	args := m.Called()
	return args.Error(0)
}
