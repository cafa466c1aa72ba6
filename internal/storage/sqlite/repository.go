package sqlite

import (
	"cod-fraud-system/internal/models"
	"cod-fraud-system/internal/storage"
)

// Repository реализует интерфейс VerdictRepository для SQLite
type Repository struct {
	storage *SQLiteStorage
}

// NewRepository создает новый репозиторий SQLite
func NewRepository(storage *SQLiteStorage) storage.VerdictRepository {
	return &Repository{storage: storage}
}

func (r *Repository) SaveVerdict(sessionID string, verdict *models.Verdict) error {
	return r.storage.SaveVerdict(sessionID, verdict)
}

func (r *Repository) GetVerdict(sessionID string, orderID int64) (*models.Verdict, error) {
	return r.storage.GetVerdict(sessionID, orderID)
}

func (r *Repository) ListVerdicts(sessionID string, limit int) ([]*models.Verdict, error) {
	return r.storage.ListVerdicts(sessionID, limit)
}

func (r *Repository) CountVerdicts(sessionID string) (*models.VerdictStats, error) {
	return r.storage.CountVerdicts(sessionID)
}

func (r *Repository) ClearAllVerdicts() error {
	return r.storage.ClearAllVerdicts()
}
