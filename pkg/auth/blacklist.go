package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const blacklistKeyPrefix = "blacklist:"

// Blacklist хранит отозванные токены до их естественного истечения.
// Logout отзывает только предъявленный токен, остальные сессии
// пользователя продолжают работать.
type Blacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// RedisBlacklist — реализация поверх Redis с TTL на ключах
type RedisBlacklist struct {
	rdb *redis.Client
}

var _ Blacklist = (*RedisBlacklist)(nil)

func NewRedisBlacklist(rdb *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{rdb: rdb}
}

func (b *RedisBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Токен уже истёк, отзывать нечего
		return nil
	}
	return b.rdb.Set(ctx, blacklistKeyPrefix+token, 1, ttl).Err()
}

func (b *RedisBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	exists, err := b.rdb.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
