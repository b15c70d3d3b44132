package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/derek-dv/eld-planner/internal/domain"
	"github.com/derek-dv/eld-planner/internal/ports"
)

// RedisRouteCache stores routed results in Redis for shared, low-latency
// access across server instances. Values are JSON and expire after TTL.
type RedisRouteCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type cachedRoute struct {
	DistanceMiles float64     `json:"distance_miles"`
	DurationHours float64     `json:"duration_hours"`
	Geometry      [][]float64 `json:"geometry"`
}

// NewRedisRouteCache connects to addr and verifies the connection.
// A ttl of zero keeps entries indefinitely.
func NewRedisRouteCache(addr string, ttl time.Duration) (*RedisRouteCache, error) {
	if addr == "" {
		return nil, errors.New("redis route cache: addr is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 2,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis route cache: ping %q: %w", addr, err)
	}

	return &RedisRouteCache{
		client: client,
		prefix: "eldplanner:routes:",
		ttl:    ttl,
	}, nil
}

func (r *RedisRouteCache) key(start, end domain.Coordinates) string {
	return r.prefix + coordKey(start) + "|" + coordKey(end)
}

func (r *RedisRouteCache) Get(
	ctx context.Context,
	start, end domain.Coordinates,
) (ports.RouteResult, bool, error) {
	raw, err := r.client.Get(ctx, r.key(start, end)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: redis get: %w", err)
	}

	var cached cachedRoute
	if err := json.Unmarshal(raw, &cached); err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: parse value: %w", err)
	}

	geometry := make([]domain.Coordinates, 0, len(cached.Geometry))
	for _, pair := range cached.Geometry {
		if len(pair) < 2 {
			continue
		}
		geometry = append(geometry, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}

	return ports.RouteResult{
		DistanceMiles: cached.DistanceMiles,
		DurationHours: cached.DurationHours,
		Geometry:      geometry,
	}, true, nil
}

func (r *RedisRouteCache) Put(
	ctx context.Context,
	start, end domain.Coordinates,
	route ports.RouteResult,
) error {
	pairs := make([][]float64, 0, len(route.Geometry))
	for _, c := range route.Geometry {
		pairs = append(pairs, c.CoordsToList())
	}

	raw, err := json.Marshal(cachedRoute{
		DistanceMiles: route.DistanceMiles,
		DurationHours: route.DurationHours,
		Geometry:      pairs,
	})
	if err != nil {
		return fmt.Errorf("put route cache: marshal value: %w", err)
	}

	if err := r.client.Set(ctx, r.key(start, end), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: redis set: %w", err)
	}

	return nil
}

// Close releases the underlying Redis connection pool.
func (r *RedisRouteCache) Close() error {
	return r.client.Close()
}
