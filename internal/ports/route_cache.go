package ports

import (
	"context"

	"github.com/derek-dv/eld-planner/internal/domain"
)

// Optional cache placed in front of a RouteProvider to avoid repeated
// external routing calls for the same endpoint pair.
type RouteCache interface {
	// Return the cached route for the pair, and whether it was present.
	Get(ctx context.Context, start, end domain.Coordinates) (RouteResult, bool, error)
	// Store a route for the pair, replacing any previous entry.
	Put(ctx context.Context, start, end domain.Coordinates, route RouteResult) error
}
