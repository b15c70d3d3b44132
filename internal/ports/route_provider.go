package ports

import (
	"context"

	"github.com/derek-dv/eld-planner/internal/domain"
)

// Routed distance, estimated driving duration, and polyline between two points.
type RouteResult struct {
	DistanceMiles float64
	DurationHours float64
	Geometry      []domain.Coordinates
}

// Contract for retrieving a driving route between two coordinates.
type RouteProvider interface {
	// Return the routed distance, duration, and geometry from start to end.
	// The geometry endpoints correspond to the requested coordinates.
	GetRoute(ctx context.Context, start, end domain.Coordinates) (RouteResult, error)
}
