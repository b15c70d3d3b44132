package domain

// RouteLeg is one point-to-point portion of the overall trip.
//
// A leg carries the routed distance, the estimated driving duration, and the
// routed polyline geometry as an ordered sequence of coordinates. Legs are
// read-only inputs to the schedule simulator.
type RouteLeg struct {
	StartName     string
	EndName       string
	DistanceMiles float64
	DurationHours float64
	Geometry      []Coordinates
}

// NormalizeGeometry substitutes a degenerate two-point placeholder at the
// origin when the leg geometry is missing or has fewer than two points.
// A schedule must be producible even from partial routing data.
func (l *RouteLeg) NormalizeGeometry() {
	if len(l.Geometry) < 2 {
		l.Geometry = []Coordinates{{}, {}}
	}
}
