package redis

import (
	"context"
	"fmt"
	"time"

	"cod-fraud-system/internal/fraud"

	redisv9 "github.com/redis/go-redis/v9"
)

const seenIPsTTL = 24 * time.Hour

// SeenIPStore множество встреченных IP сеанса в Redis
type SeenIPStore struct {
	rdb *redisv9.Client
	key string
}

var _ fraud.IPHistory = (*SeenIPStore)(nil)

// SeenIPs возвращает множество IP для сеанса. Ключ включает ID процесса:
// сеансы живут в памяти процесса, и сеанс с тем же ID после перезапуска начинается с пустым множеством.
func (c *Client) SeenIPs(sessionID string) fraud.IPHistory {
	return &SeenIPStore{
		rdb: c.rdb,
		key: fmt.Sprintf("session:%s:seen_ips:%s", sessionID, c.instance),
	}
}

// Contains только проверка, без вставки
func (s *SeenIPStore) Contains(ip string) (bool, error) {
	ctx := context.Background()
	return s.rdb.SIsMember(ctx, s.key, ip).Result()
}

// Add добавляет IP и продлевает TTL множества
func (s *SeenIPStore) Add(ip string) error {
	ctx := context.Background()
	pipe := s.rdb.Pipeline()
	pipe.SAdd(ctx, s.key, ip)
	pipe.Expire(ctx, s.key, seenIPsTTL)
	_, err := pipe.Exec(ctx)
	return err
}
