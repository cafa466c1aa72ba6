package redis

import (
	"context"
	"fmt"

	"cod-fraud-system/internal/logger"

	"go.uber.org/zap"
)

// clearPatterns кэш вердиктов и глобальные счетчики. Множества IP живых сеансов не трогаем.
var clearPatterns = []string{"session:*:verdict:*", "verdict_stats:*"}

const scanBatch = 100

// ClearSessionData удаляет кэш вердиктов и статистику, ключи удаляются пачками по мере сканирования
func (c *Client) ClearSessionData() error {
	ctx := context.Background()

	deleted := 0
	for _, pattern := range clearPatterns {
		batch := make([]string, 0, scanBatch)
		iter := c.rdb.Scan(ctx, 0, pattern, scanBatch).Iterator()
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == scanBatch {
				if err := c.rdb.Unlink(ctx, batch...).Err(); err != nil {
					return fmt.Errorf("failed to delete keys %s: %w", pattern, err)
				}
				deleted += len(batch)
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to scan keys %s: %w", pattern, err)
		}
		if len(batch) > 0 {
			if err := c.rdb.Unlink(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys %s: %w", pattern, err)
			}
			deleted += len(batch)
		}
	}

	logger.Info("Redis session data cleared", zap.Int("keys", deleted))
	return nil
}
