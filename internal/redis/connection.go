package redis

import (
	"context"
	"fmt"
	"time"

	"cod-fraud-system/config"
	"cod-fraud-system/internal/logger"

	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = time.Second
)

// Client кэш вердиктов, счетчики и множества IP сеансов
type Client struct {
	rdb *redisv9.Client
	// instance отделяет множества IP этого процесса от оставшихся после предыдущих запусков
	instance string
}

// NewClient подключается к Redis и проверяет соединение
func NewClient(cfg *config.Config) (*Client, error) {
	addr := fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port)
	rdb := redisv9.NewClient(&redisv9.Options{
		Addr:         addr,
		Password:     cfg.Redis.Password,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logger.Debug("Redis ping ok", zap.String("addr", addr))
	return &Client{rdb: rdb, instance: uuid.NewString()}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
