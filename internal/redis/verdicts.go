package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cod-fraud-system/internal/models"

	redisv9 "github.com/redis/go-redis/v9"
)

func verdictKey(sessionID string, orderID int64) string {
	return fmt.Sprintf("session:%s:verdict:%d", sessionID, orderID)
}

// SaveVerdict сохраняет вердикт в Redis с TTL 1 час
func (c *Client) SaveVerdict(sessionID string, verdict *models.Verdict) error {
	ctx := context.Background()

	data, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	return c.rdb.Set(ctx, verdictKey(sessionID, verdict.OrderID), data, time.Hour).Err()
}

// GetVerdict получает вердикт из Redis, nil если его нет
func (c *Client) GetVerdict(sessionID string, orderID int64) (*models.Verdict, error) {
	ctx := context.Background()

	data, err := c.rdb.Get(ctx, verdictKey(sessionID, orderID)).Result()
	if err == redisv9.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verdict: %w", err)
	}

	var verdict models.Verdict
	if err := json.Unmarshal([]byte(data), &verdict); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verdict: %w", err)
	}

	return &verdict, nil
}
