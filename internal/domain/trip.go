package domain

import "fmt"

// MaxCycleHours is the rolling 8-day duty-hour cap for a property-carrying
// driver. Trips declaring more consumed cycle hours than this are rejected.
const MaxCycleHours = 70.0

// Location is a named point on the map.
type Location struct {
	Name string
	Coordinates
}

// Trip is the planning request aggregate: where the driver currently is,
// where the load is picked up, where it is dropped off, and how many hours
// of the current 8-day cycle are already consumed.
type Trip struct {
	Current          Location
	Pickup           Location
	Dropoff          Location
	InitialHoursUsed float64
}

// Validate checks the trip invariants before any routing work is done.
func (t *Trip) Validate() error {
	for _, loc := range []struct {
		name string
		loc  Location
	}{
		{"current_location", t.Current},
		{"pickup_location", t.Pickup},
		{"dropoff_location", t.Dropoff},
	} {
		if !loc.loc.Valid() {
			return fmt.Errorf(
				"validate trip: %s out of range: lon=%v lat=%v",
				loc.name, loc.loc.Lon, loc.loc.Lat,
			)
		}
	}

	if t.InitialHoursUsed < 0 || t.InitialHoursUsed > MaxCycleHours {
		return fmt.Errorf(
			"validate trip: initial hours used must be in [0, %v], got %v",
			MaxCycleHours, t.InitialHoursUsed,
		)
	}

	return nil
}

// Waypoint is a map marker derived from the planned schedule.
type Waypoint struct {
	Name string
	Lat  float64
	Lng  float64
	Type string
}

// TripStats aggregates trip totals across all route legs and schedule days.
type TripStats struct {
	TotalDistanceMiles float64
	TotalDrivingHours  float64
	TotalTripDays      int
}
