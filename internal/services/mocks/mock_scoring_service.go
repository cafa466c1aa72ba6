package mocks

import (
	"cod-fraud-system/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockScoringService является моком для services.ScoringService интерфейса
type MockScoringService struct {
	mock.Mock
}

func (m *MockScoringService) CreateSession() (*models.Session, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockScoringService) OpenSession(sessionID string) (*models.Session, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockScoringService) GetSession(sessionID string) (*models.Session, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockScoringService) IngestNext(sessionID string) (*models.Verdict, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Verdict), args.Error(1)
}

func (m *MockScoringService) ScoreOrder(sessionID string, order *models.Order) (*models.Verdict, error) {
	args := m.Called(sessionID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Verdict), args.Error(1)
}

func (m *MockScoringService) ListVerdicts(sessionID string, limit int) ([]*models.Verdict, error) {
	args := m.Called(sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Verdict), args.Error(1)
}

func (m *MockScoringService) GenerateOrders(count int) ([]models.Order, error) {
	args := m.Called(count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockScoringService) PublishOrders(count int) (int, error) {
	args := m.Called(count)
	return args.Int(0), args.Error(1)
}

func (m *MockScoringService) ModelSummary() models.ModelSummary {
	args := m.Called()
	return args.Get(0).(models.ModelSummary)
}

func (m *MockScoringService) GetVerdict(sessionID string, orderID int64) (*models.Verdict, error) {
	args := m.Called(sessionID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Verdict), args.Error(1)
}

func (m *MockScoringService) SessionStats(sessionID string) (*models.VerdictStats, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerdictStats), args.Error(1)
}

func (m *MockScoringService) ServiceStats() (*models.ServiceStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceStats), args.Error(1)
}

func (m *MockScoringService) ClearVerdicts() error {
	args := m.Called()
	return args.Error(0)
}
