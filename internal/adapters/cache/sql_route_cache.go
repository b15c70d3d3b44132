package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/derek-dv/eld-planner/internal/domain"
	"github.com/derek-dv/eld-planner/internal/platform/obs"
	"github.com/derek-dv/eld-planner/internal/ports"
)

// coordKey renders coordinates as a stable cache key. Five decimal places is
// about one meter of precision, enough to collapse float jitter.
func coordKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lon, c.Lat)
}

// SQLRouteCache is a SQL-backed cache of routed start->end results.
// Geometry is stored as a JSON array of [lon, lat] pairs.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch a cached route for the endpoint pair.
func (s *SQLRouteCache) Get(
	ctx context.Context,
	start, end domain.Coordinates,
) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}

	q := `
	SELECT distance_miles, duration_hours, geometry
	FROM route_cache
	WHERE origin = ? AND destination = ?;
	`

	var miles, hours float64
	var geometryJSON string
	row := s.DB.QueryRowContext(ctx, q, coordKey(start), coordKey(end))
	if err := row.Scan(&miles, &hours, &geometryJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.RouteResult{}, false, nil
		}
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: scan row: %w", err)
	}

	var pairs [][]float64
	if err := json.Unmarshal([]byte(geometryJSON), &pairs); err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: parse geometry: %w", err)
	}

	geometry := make([]domain.Coordinates, 0, len(pairs))
	for _, pair := range pairs {
		if len(pair) < 2 {
			continue
		}
		geometry = append(geometry, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}

	return ports.RouteResult{
		DistanceMiles: miles,
		DurationHours: hours,
		Geometry:      geometry,
	}, true, nil
}

// Store a routed result for the endpoint pair, replacing any previous entry.
func (s *SQLRouteCache) Put(
	ctx context.Context,
	start, end domain.Coordinates,
	route ports.RouteResult,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	pairs := make([][]float64, 0, len(route.Geometry))
	for _, c := range route.Geometry {
		pairs = append(pairs, c.CoordsToList())
	}

	geometryJSON, err := json.Marshal(pairs)
	if err != nil {
		return fmt.Errorf("put route cache: marshal geometry: %w", err)
	}

	q := `
	INSERT INTO route_cache (origin, destination, distance_miles, duration_hours, geometry)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_miles = EXCLUDED.distance_miles,
		duration_hours = EXCLUDED.duration_hours,
		geometry = EXCLUDED.geometry;
	`

	if _, err := s.DB.ExecContext(
		ctx, q,
		coordKey(start), coordKey(end),
		route.DistanceMiles, route.DurationHours, string(geometryJSON),
	); err != nil {
		return fmt.Errorf("put route cache: exec insert: %w", err)
	}

	return nil
}
