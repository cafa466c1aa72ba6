package models

import "time"

// Session сеанс оценки: очередь входящих заказов и собственное множество IP
type Session struct {
	SessionID    string    `json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
	Pending      int       `json:"pending"`
	Processed    int       `json:"processed"`
	FlaggedCount int       `json:"flagged_count"`
}

// VerdictStats агрегированная статистика по вердиктам сеанса
type VerdictStats struct {
	Processed int64 `json:"processed"`
	Flagged   int64 `json:"flagged"`
}

// ServiceStats сводка по процессу: число сеансов и глобальные счетчики из Redis
type ServiceStats struct {
	Sessions        int   `json:"sessions"`
	CacheEnabled    bool  `json:"cache_enabled"`
	CachedProcessed int64 `json:"cached_processed"`
	CachedFlagged   int64 `json:"cached_flagged"`
}

// ModelSummary описание обученной модели
type ModelSummary struct {
	Features         []string  `json:"features"`
	Coefficients     []float64 `json:"coefficients"`
	Intercept        float64   `json:"intercept"`
	Iterations       int       `json:"iterations"`
	TrainingRows     int       `json:"training_rows"`
	TrainingAccuracy float64   `json:"training_accuracy"`
	TrainedAt        time.Time `json:"trained_at"`
}
