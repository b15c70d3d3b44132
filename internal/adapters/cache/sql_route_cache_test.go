package cache

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/derek-dv/eld-planner/internal/adapters/repositories"
	"github.com/derek-dv/eld-planner/internal/domain"
	"github.com/derek-dv/eld-planner/internal/ports"
)

func newTestSQLCache(t *testing.T) *SQLRouteCache {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}

	return NewSQLRouteCache(db)
}

func TestSQLRouteCacheMiss(t *testing.T) {
	c := newTestSQLCache(t)

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

func TestSQLRouteCacheRoundTrip(t *testing.T) {
	c := newTestSQLCache(t)
	ctx := context.Background()

	start := domain.Coordinates{Lon: -87.63, Lat: 41.88}
	end := domain.Coordinates{Lon: -86.16, Lat: 39.77}
	route := ports.RouteResult{
		DistanceMiles: 183.4,
		DurationHours: 3.2,
		Geometry: []domain.Coordinates{
			{Lon: -87.63, Lat: 41.88},
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
}

func TestSQLRouteCachePutReplaces(t *testing.T) {
	c := newTestSQLCache(t)
	ctx := context.Background()

	start := domain.Coordinates{Lon: 0, Lat: 0}
	end := domain.Coordinates{Lon: 1, Lat: 1}

	first := ports.RouteResult{DistanceMiles: 10, DurationHours: 0.2}
	second := ports.RouteResult{DistanceMiles: 12, DurationHours: 0.25}

	if err := c.Put(ctx, start, end, first); err != nil {
		t.Fatalf("Put first: %v", err)
	}
	if err := c.Put(ctx, start, end, second); err != nil {
		t.Fatalf("Put second: %v", err)
	}

	got, ok, err := c.Get(ctx, start, end)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.DistanceMiles != 12 {
		t.Fatalf("distance = %v, want the replaced value 12", got.DistanceMiles)
	}
}

func TestSQLRouteCacheKeyPrecision(t *testing.T) {
	// Coordinates differing past the fifth decimal share a cache key.
	a := domain.Coordinates{Lon: -87.630001, Lat: 41.880001}
	b := domain.Coordinates{Lon: -87.630002, Lat: 41.880002}
	if coordKey(a) != coordKey(b) {
		t.Fatalf("keys differ: %q vs %q", coordKey(a), coordKey(b))
	}

	c := domain.Coordinates{Lon: -87.6301, Lat: 41.88}
	if coordKey(a) == coordKey(c) {
		t.Fatalf("distinct coordinates share key %q", coordKey(a))
	}
}

func TestSQLRouteCacheNilDB(t *testing.T) {
	c := NewSQLRouteCache(nil)

	if _, _, err := c.Get(context.Background(), domain.Coordinates{}, domain.Coordinates{}); err == nil {
		t.Fatal("want error for nil DB on Get")
	}
	if err := c.Put(context.Background(), domain.Coordinates{}, domain.Coordinates{}, ports.RouteResult{}); err == nil {
		t.Fatal("want error for nil DB on Put")
	}
}
