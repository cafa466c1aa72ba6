package redis

import (
	"context"
	"strconv"

	redisv9 "github.com/redis/go-redis/v9"
)

const (
	statsProcessedKey = "verdict_stats:processed"
	statsFlaggedKey   = "verdict_stats:flagged"
)

// IncrementVerdictStats увеличивает счетчики обработанных и помеченных заказов
func (c *Client) IncrementVerdictStats(flagged bool) error {
	ctx := context.Background()
	pipe := c.rdb.Pipeline()
	pipe.Incr(ctx, statsProcessedKey)
	if flagged {
		pipe.Incr(ctx, statsFlaggedKey)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GetVerdictStats возвращает текущие значения счетчиков
func (c *Client) GetVerdictStats() (processed, flagged int64, err error) {
	ctx := context.Background()
	values, err := c.rdb.MGet(ctx, statsProcessedKey, statsFlaggedKey).Result()
	if err != nil && err != redisv9.Nil {
		return 0, 0, err
	}
	return toInt64(values[0]), toInt64(values[1]), nil
}

func toInt64(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
