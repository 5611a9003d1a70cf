package auth

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Blacklist 已注销令牌ID集合
type Blacklist interface {
	// Add 记录令牌ID直到 expireAt
	Add(ctx context.Context, tokenID string, expireAt time.Time) error
	// Contains 令牌ID是否已注销
	Contains(ctx context.Context, tokenID string) (bool, error)
}

// 黑名单类型
const (
	MemoryBlacklist = "memory"
	RedisBlacklist  = "redis"
)

// Redis键前缀
const blacklistKeyPrefix = "jwt:blacklist:"

// memoryBlacklist 进程内黑名单，过期条目由 go-cache 定期清理
type memoryBlacklist struct {
	cache *gocache.Cache
}

// NewMemoryBlacklist 创建进程内黑名单
func NewMemoryBlacklist() Blacklist {
	return &memoryBlacklist{cache: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (b *memoryBlacklist) Add(_ context.Context, tokenID string, expireAt time.Time) error {
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		return nil
	}
	b.cache.Set(tokenID, struct{}{}, ttl)
	return nil
}

func (b *memoryBlacklist) Contains(_ context.Context, tokenID string) (bool, error) {
	_, ok := b.cache.Get(tokenID)
	return ok, nil
}

// redisBlacklist Redis黑名单，多实例部署时共享
type redisBlacklist struct {
	client *redis.Client
}

// NewRedisBlacklist 创建Redis黑名单
func NewRedisBlacklist(client *redis.Client) Blacklist {
	return &redisBlacklist{client: client}
}

func (b *redisBlacklist) Add(ctx context.Context, tokenID string, expireAt time.Time) error {
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("添加令牌到黑名单失败: %w", err)
	}
	return nil
}

func (b *redisBlacklist) Contains(ctx context.Context, tokenID string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func blacklistKey(tokenID string) string {
	return blacklistKeyPrefix + tokenID
}
