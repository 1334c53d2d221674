package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/DevSlashRichie/coinme/internal/config"
	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

// BalanceKey - ключ баланса владельца в Redis
func BalanceKey(owner domain.Party) string {
	return fmt.Sprintf("balance:%s:%s", owner.Kind, owner.ID.Hex())
}

// RedisBalanceCache хранит балансы владельцев с ограниченным временем жизни
type RedisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBalanceCache(client *redis.Client, ttl time.Duration) *RedisBalanceCache {
	return &RedisBalanceCache{client: client, ttl: ttl}
}

// Get возвращает баланс и признак попадания в кеш
func (c *RedisBalanceCache) Get(ctx context.Context, owner domain.Party) (float64, bool, error) {
	val, err := c.client.Get(ctx, BalanceKey(owner)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	balance, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt cached balance %q: %w", val, err)
	}
	return balance, true, nil
}

func (c *RedisBalanceCache) Set(ctx context.Context, owner domain.Party, balance float64) error {
	return c.client.Set(ctx, BalanceKey(owner), strconv.FormatFloat(balance, 'f', -1, 64), c.ttl).Err()
}

// Invalidate удаляет баланс владельца, следующий запрос пересчитает его
func (c *RedisBalanceCache) Invalidate(ctx context.Context, owner domain.Party) error {
	return c.client.Del(ctx, BalanceKey(owner)).Err()
}

// Noop используется, когда Redis не настроен: всегда промах
type Noop struct{}

func (Noop) Get(ctx context.Context, owner domain.Party) (float64, bool, error) {
	return 0, false, nil
}

func (Noop) Set(ctx context.Context, owner domain.Party, balance float64) error {
	return nil
}

func (Noop) Invalidate(ctx context.Context, owner domain.Party) error {
	return nil
}
