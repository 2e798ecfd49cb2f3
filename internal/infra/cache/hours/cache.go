// Package hours кэширует недельное расписание в Redis, ключ на каждый день недели.
package hours

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yaduk2001/selling-sub001/internal/config"
	"github.com/yaduk2001/selling-sub001/internal/domain"
	"github.com/yaduk2001/selling-sub001/pkg/types"
)

const keyPrefix = "business_hours:"

// ErrNilClient кэш создан без клиента
var ErrNilClient = errors.New("hours.cache: redis client is nil")

// NewRedisClient создает клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

type cachedHours struct {
	Weekday      int              `json:"weekday"`
	IsWorkingDay bool             `json:"is_working_day"`
	StartTime    types.TimeString `json:"start_time,omitempty"`
	EndTime      types.TimeString `json:"end_time,omitempty"`
	Breaks       []domain.Break   `json:"breaks"`
	Timezone     string           `json:"timezone,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Cache read-through кэш расписания
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(weekday time.Weekday) string {
	return fmt.Sprintf("%s%d", keyPrefix, int(weekday))
}

// Get возвращает расписание дня недели; nil, nil при промахе
func (c *Cache) Get(ctx context.Context, weekday time.Weekday) (*domain.BusinessHours, error) {
	if c.client == nil {
		return nil, ErrNilClient
	}

	val, err := c.client.Get(ctx, key(weekday)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hours.cache: get %d: %w", weekday, err)
	}

	var cached cachedHours
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, fmt.Errorf("hours.cache: unmarshal %d: %w", weekday, err)
	}

	breaks := cached.Breaks
	if breaks == nil {
		breaks = []domain.Break{}
	}
	return &domain.BusinessHours{
		Weekday:      time.Weekday(cached.Weekday),
		IsWorkingDay: cached.IsWorkingDay,
		StartTime:    cached.StartTime,
		EndTime:      cached.EndTime,
		Breaks:       breaks,
		Timezone:     cached.Timezone,
		UpdatedAt:    cached.UpdatedAt,
	}, nil
}

// Set кладёт расписание в кэш на ttl
func (c *Cache) Set(ctx context.Context, hours *domain.BusinessHours) error {
	if c.client == nil {
		return ErrNilClient
	}

	data, err := json.Marshal(cachedHours{
		Weekday:      int(hours.Weekday),
		IsWorkingDay: hours.IsWorkingDay,
		StartTime:    hours.StartTime,
		EndTime:      hours.EndTime,
		Breaks:       hours.Breaks,
		Timezone:     hours.Timezone,
		UpdatedAt:    hours.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("hours.cache: marshal %d: %w", hours.Weekday, err)
	}

	if err := c.client.Set(ctx, key(hours.Weekday), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("hours.cache: set %d: %w", hours.Weekday, err)
	}
	return nil
}

// Invalidate удаляет день недели из кэша
func (c *Cache) Invalidate(ctx context.Context, weekday time.Weekday) error {
	if c.client == nil {
		return ErrNilClient
	}
	if err := c.client.Del(ctx, key(weekday)).Err(); err != nil {
		return fmt.Errorf("hours.cache: del %d: %w", weekday, err)
	}
	return nil
}
