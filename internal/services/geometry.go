package services

import (
	"errors"
	"math"

	"github.com/derek-dv/eld-planner/internal/domain"
)

// earthRadiusMiles is the spherical earth radius used for every distance in
// the system. Duty-hour accounting depends on distances being computed the
// same way everywhere, so no other radius or formula may be mixed in.
const earthRadiusMiles = 3956.0

var (
	// ErrEmptyRoute is returned by ProjectStrict for a polyline with no points.
	ErrEmptyRoute = errors.New("route geometry is empty")
	// ErrInvalidGeometry is returned by ProjectStrict when a polyline cannot
	// support projection (single point or no finite segment).
	ErrInvalidGeometry = errors.New("route geometry is invalid")
)

// HaversineMiles returns the great-circle distance between two points in miles.
func HaversineMiles(a, b domain.Coordinates) float64 {
	lon1 := a.Lon * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lon2 := b.Lon * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180

	dLon := lon2 - lon1
	dLat := lat2 - lat1

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)

	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

// ProjectAlongRoute finds the point reached after traveling targetMiles along
// a polyline, and the unconsumed suffix of the polyline.
//
// Segment distances are great-circle miles; the bracketing pair is then
// interpolated linearly in raw lon/lat space. The interpolated point is not
// spliced back into the remainder: the suffix starts at the next vertex.
//
// The function never fails. An empty polyline yields the origin, a
// single-point polyline yields that point, a target beyond the polyline's
// length yields the last point, and segments whose distance does not compute
// to a finite number are skipped. Zero-length segments interpolate at ratio 0.
func ProjectAlongRoute(
	route []domain.Coordinates,
	targetMiles float64,
) (domain.Coordinates, []domain.Coordinates) {
	if len(route) == 0 {
		return domain.Coordinates{}, nil
	}
	if len(route) < 2 {
		return route[len(route)-1], nil
	}

	traveled := 0.0

	for i := 0; i < len(route)-1; i++ {
		start, end := route[i], route[i+1]

		segment := HaversineMiles(start, end)
		if math.IsNaN(segment) || math.IsInf(segment, 0) {
			// Degrade rather than fail: an uncomputable pair contributes
			// nothing to the cumulative distance.
			continue
		}

		if traveled+segment >= targetMiles {
			remaining := targetMiles - traveled
			ratio := 0.0
			if segment > 0 {
				ratio = remaining / segment
			}
			ratio = math.Max(0, math.Min(1, ratio))

			point := domain.Coordinates{
				Lon: start.Lon + ratio*(end.Lon-start.Lon),
				Lat: start.Lat + ratio*(end.Lat-start.Lat),
			}
			return point, route[i+1:]
		}

		traveled += segment
	}

	// Target beyond the end of the polyline.
	return route[len(route)-1], nil
}

// ProjectStrict is the validating variant of ProjectAlongRoute. It surfaces
// degenerate inputs as errors instead of resolving them to defaults, for
// callers that would rather reject malformed geometry than place a stop at
// the origin.
func ProjectStrict(
	route []domain.Coordinates,
	targetMiles float64,
) (domain.Coordinates, []domain.Coordinates, error) {
	if len(route) == 0 {
		return domain.Coordinates{}, nil, ErrEmptyRoute
	}
	if len(route) < 2 {
		return domain.Coordinates{}, nil, ErrInvalidGeometry
	}

	for _, c := range route {
		if math.IsNaN(c.Lon) || math.IsNaN(c.Lat) ||
			math.IsInf(c.Lon, 0) || math.IsInf(c.Lat, 0) {
			return domain.Coordinates{}, nil, ErrInvalidGeometry
		}
	}

	point, rest := ProjectAlongRoute(route, targetMiles)
	return point, rest, nil
}
