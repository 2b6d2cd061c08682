package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightres/config"
	"github.com/Domenick1991/flightres/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache is a read-through cache for catalog search results. It caches
// the shared, store-derived answer to a search; the per-session itinerary
// cache stays inside each Session.
type RedisCache struct {
	client    *redis.Client
	searchTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL: searchTTL,
	}
}

func (c *RedisCache) GetItineraries(ctx context.Context, origin, dest string, dayOfMonth int, directOnly bool, max int) ([]domain.Itinerary, error) {
	data, err := c.client.Get(ctx, searchKey(origin, dest, dayOfMonth, directOnly, max)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var itineraries []domain.Itinerary
	if err := json.Unmarshal(data, &itineraries); err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (c *RedisCache) SetItineraries(ctx context.Context, origin, dest string, dayOfMonth int, directOnly bool, max int, itineraries []domain.Itinerary) error {
	payload, err := json.Marshal(itineraries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(origin, dest, dayOfMonth, directOnly, max), payload, c.searchTTL).Err()
}

// searchKey carries the full argument tuple so different searches never share
// an entry.
func searchKey(origin, dest string, dayOfMonth int, directOnly bool, max int) string {
	return fmt.Sprintf("cache:search:%s:%s:%d:%t:%d", origin, dest, dayOfMonth, directOnly, max)
}
