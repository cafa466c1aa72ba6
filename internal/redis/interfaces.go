package redis

import (
	"cod-fraud-system/internal/fraud"
	"cod-fraud-system/internal/models"
)

// ClientInterface определяет интерфейс для работы с Redis
// Реализуется типом Client
type ClientInterface interface {
	// SeenIPs возвращает множество встреченных IP сеанса
	SeenIPs(sessionID string) fraud.IPHistory

	// SaveVerdict сохраняет вердикт в Redis
	SaveVerdict(sessionID string, verdict *models.Verdict) error

	// GetVerdict получает вердикт из Redis
	GetVerdict(sessionID string, orderID int64) (*models.Verdict, error)

	// IncrementVerdictStats увеличивает счетчики вердиктов
	IncrementVerdictStats(flagged bool) error

	// GetVerdictStats возвращает счетчики вердиктов
	GetVerdictStats() (processed, flagged int64, err error)

	// ClearSessionData очищает данные сеансов
	ClearSessionData() error

	// Close закрывает соединение с Redis
	Close() error
}

// Убеждаемся, что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)
