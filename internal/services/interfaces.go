package services

import (
	"errors"

	"cod-fraud-system/internal/fraud"
	"cod-fraud-system/internal/models"
	"cod-fraud-system/internal/session"
)

var (
	// ErrQueueExhausted в очереди сеанса не осталось заказов
	ErrQueueExhausted  = errors.New("no more new orders to ingest")
	ErrSessionNotFound = session.ErrSessionNotFound
	ErrInvalidCount    = errors.New("count must be between 1 and 1000")
	ErrVerdictNotFound = errors.New("verdict not found")
)

// ScoringService определяет интерфейс сервиса оценки заказов
type ScoringService interface {
	// CreateSession создает сеанс с очередью сгенерированных входящих заказов
	CreateSession() (*models.Session, error)

	// OpenSession возвращает сеанс по ID, создавая его с пустой очередью при отсутствии
	OpenSession(sessionID string) (*models.Session, error)

	// GetSession возвращает состояние сеанса
	GetSession(sessionID string) (*models.Session, error)

	// IngestNext извлекает следующий заказ из очереди сеанса и оценивает его
	IngestNext(sessionID string) (*models.Verdict, error)

	// ScoreOrder оценивает переданный заказ в рамках сеанса
	ScoreOrder(sessionID string, order *models.Order) (*models.Verdict, error)

	// ListVerdicts возвращает последние вердикты сеанса
	ListVerdicts(sessionID string, limit int) ([]*models.Verdict, error)

	// GetVerdict возвращает вердикт по заказу, сначала из кэша Redis, затем из БД
	GetVerdict(sessionID string, orderID int64) (*models.Verdict, error)

	// SessionStats считает сохраненные вердикты сеанса
	SessionStats(sessionID string) (*models.VerdictStats, error)

	// ServiceStats число сеансов и счетчики вердиктов из Redis
	ServiceStats() (*models.ServiceStats, error)

	// ClearVerdicts удаляет сохраненные вердикты и кэш
	ClearVerdicts() error

	// GenerateOrders генерирует входящие заказы без эталонных колонок
	GenerateOrders(count int) ([]models.Order, error)

	// PublishOrders генерирует заказы и публикует их в топик входящих заказов
	PublishOrders(count int) (int, error)

	// ModelSummary описание обученной модели
	ModelSummary() models.ModelSummary
}

// ModelDescriber модель, умеющая описать себя
type ModelDescriber interface {
	Summary() models.ModelSummary
}

// HistoryFactory создает множество встреченных IP для нового сеанса
type HistoryFactory func(sessionID string) fraud.IPHistory
