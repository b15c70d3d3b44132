package routing

import (
	"context"
	"fmt"

	"github.com/derek-dv/eld-planner/internal/domain"
	"github.com/derek-dv/eld-planner/internal/ports"
)

// MockRoute is one fixed route for the mock provider's lookup table.
type MockRoute struct {
	Start, End domain.Coordinates
	Miles      float64
	Hours      float64
	Geometry   []domain.Coordinates
}

// MockRouteProvider serves routes from a fixed table for tests.
type MockRouteProvider struct {
	m map[string]ports.RouteResult
}

func pairKey(start, end domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", start.Lon, start.Lat, end.Lon, end.Lat)
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[string]ports.RouteResult, len(routes))
	for _, r := range routes {
		m[pairKey(r.Start, r.End)] = ports.RouteResult{
			DistanceMiles: r.Miles,
			DurationHours: r.Hours,
			Geometry:      r.Geometry,
		}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(
	ctx context.Context,
	start, end domain.Coordinates,
) (ports.RouteResult, error) {
	r, ok := p.m[pairKey(start, end)]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing route %v -> %v", start, end)
	}

	return r, nil
}
