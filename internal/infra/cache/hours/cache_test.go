package hours

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

func TestCache(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		got, err := cache.Get(ctx, time.Monday)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		hours := &domain.BusinessHours{
			Weekday:      time.Wednesday,
			IsWorkingDay: true,
			StartTime:    "09:00",
			EndTime:      "17:00",
			Breaks:       []domain.Break{{Start: "12:00", End: "12:30"}},
			Timezone:     "Europe/Berlin",
		}
		require.NoError(t, cache.Set(ctx, hours))
		assert.True(t, s.Exists("business_hours:3"))

		got, err := cache.Get(ctx, time.Wednesday)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, time.Wednesday, got.Weekday)
		assert.True(t, got.IsWorkingDay)
		assert.Equal(t, "09:00", got.StartTime.String())
		assert.Equal(t, []domain.Break{{Start: "12:00", End: "12:30"}}, got.Breaks)
		assert.Equal(t, "Europe/Berlin", got.Timezone)
	})

	t.Run("TTL", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, &domain.BusinessHours{Weekday: time.Sunday}))
		s.FastForward(2 * time.Minute)

		got, err := cache.Get(ctx, time.Sunday)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Invalidate", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, &domain.BusinessHours{Weekday: time.Friday}))
		require.NoError(t, cache.Invalidate(ctx, time.Friday))

		got, err := cache.Get(ctx, time.Friday)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Unavailable", func(t *testing.T) {
		broken := NewCache(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1}), time.Minute)
		_, err := broken.Get(ctx, time.Monday)
		assert.Error(t, err)
	})
}
