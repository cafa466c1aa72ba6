package storage

import (
	"cod-fraud-system/internal/models"
)

// VerdictRepository определяет интерфейс для работы с вердиктами в хранилище
type VerdictRepository interface {
	// SaveVerdict сохраняет вердикт сеанса, повторная оценка заказа перезаписывает запись
	SaveVerdict(sessionID string, verdict *models.Verdict) error

	// GetVerdict получает вердикт по сеансу и номеру заказа
	GetVerdict(sessionID string, orderID int64) (*models.Verdict, error)

	// ListVerdicts получает последние вердикты сеанса, новые первыми
	ListVerdicts(sessionID string, limit int) ([]*models.Verdict, error)

	// CountVerdicts возвращает число вердиктов сеанса и число помеченных
	CountVerdicts(sessionID string) (*models.VerdictStats, error)

	// ClearAllVerdicts удаляет все вердикты из БД
	ClearAllVerdicts() error
}
