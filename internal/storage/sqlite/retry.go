package sqlite

import (
	"fmt"
	"strings"
	"time"

	"cod-fraud-system/internal/logger"

	"go.uber.org/zap"
)

// retryPolicy повторяет запись при блокировке БД с линейно растущей паузой
type retryPolicy struct {
	attempts int
	delay    time.Duration
}

var writeRetryPolicy = retryPolicy{attempts: 3, delay: 50 * time.Millisecond}

// isBusyError SQLITE_BUSY (5) или SQLITE_LOCKED (6)
func isBusyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "locked") ||
		strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "SQLITE_LOCKED")
}

// do выполняет fn, повторяя только ошибки блокировки
func (p retryPolicy) do(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isBusyError(lastErr) {
			return lastErr
		}
		if attempt < p.attempts {
			logger.Warn("SQLite busy, retrying",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			time.Sleep(p.delay * time.Duration(attempt))
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, p.attempts, lastErr)
}
