package cache

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/derek-dv/eld-planner/internal/domain"
	"github.com/derek-dv/eld-planner/internal/ports"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	c, err := NewRedisRouteCache(s.Addr(), ttl)
	if err != nil {
		t.Fatalf("NewRedisRouteCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return c, s
}

func TestRedisRouteCacheMiss(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)

	_, ok, err := c.Get(context.Background(),
		domain.Coordinates{Lon: 1, Lat: 2},
		domain.Coordinates{Lon: 3, Lat: 4},
	)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("hit on empty cache")
	}
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)
	ctx := context.Background()

	start := domain.Coordinates{Lon: -87.63, Lat: 41.88}
	end := domain.Coordinates{Lon: -86.16, Lat: 39.77}
	route := ports.RouteResult{
		DistanceMiles: 183.4,
		DurationHours: 3.2,
		Geometry: []domain.Coordinates{
			{Lon: -87.63, Lat: 41.88},
			{Lon: -87.0, Lat: 40.9},
			{Lon: -86.16, Lat: 39.77},
		},
	}

	if err := c.Put(ctx, start, end, route); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, start, end)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("miss after put")
	}
	if !reflect.DeepEqual(got, route) {
		t.Fatalf("got %+v, want %+v", got, route)
	}

	// The reversed pair is a different key.
	_, ok, err = c.Get(ctx, end, start)
	if err != nil {
		t.Fatalf("Get reversed: %v", err)
	}
	if ok {
		t.Fatal("hit on reversed coordinate pair")
	}
}

func TestRedisRouteCacheTTL(t *testing.T) {
	c, s := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	start := domain.Coordinates{Lon: 0, Lat: 0}
	end := domain.Coordinates{Lon: 1, Lat: 1}
	route := ports.RouteResult{DistanceMiles: 10, DurationHours: 0.2}

	if err := c.Put(ctx, start, end, route); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, start, end)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("hit after TTL expiry")
	}
}

func TestRedisRouteCacheCorruptValue(t *testing.T) {
	c, s := newTestRedisCache(t, 0)

	start := domain.Coordinates{Lon: 0, Lat: 0}
	end := domain.Coordinates{Lon: 1, Lat: 1}
	s.Set(c.key(start, end), "not json")

	_, _, err := c.Get(context.Background(), start, end)
	if err == nil {
		t.Fatal("want error for corrupt cache value")
	}
}

func TestNewRedisRouteCacheEmptyAddr(t *testing.T) {
	if _, err := NewRedisRouteCache("", 0); err == nil {
		t.Fatal("want error for empty addr")
	}
}
