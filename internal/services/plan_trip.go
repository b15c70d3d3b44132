package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/derek-dv/eld-planner/internal/domain"
	"github.com/derek-dv/eld-planner/internal/ports"
)

// PlanTripResult bundles everything a planned trip produces: the routed
// legs, the simulated schedule, the per-day ELD logs, map waypoints, and
// aggregate stats. TripID is zero when no repository was configured.
type PlanTripResult struct {
	TripID    int64
	Legs      []domain.RouteLeg
	Schedule  []domain.ScheduleEvent
	ELDLogs   []domain.DailyLog
	Waypoints []domain.Waypoint
	Stats     domain.TripStats
}

// PlanTrip routes the two trip legs (current to pickup, pickup to dropoff),
// simulates the HOS schedule over them, and derives logs, waypoints, and
// stats. The planned trip is persisted when a repository is provided; a save
// failure is logged but does not fail the plan, since the schedule itself is
// the deliverable.
func PlanTrip(
	ctx context.Context,
	trip domain.Trip,
	provider ports.RouteProvider,
	repo ports.TripRepository,
	sim *HOSSimulator,
) (*PlanTripResult, error) {
	if err := trip.Validate(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	type legSpec struct {
		start domain.Location
		end   domain.Location
	}
	specs := []legSpec{
		{start: trip.Current, end: trip.Pickup},
		{start: trip.Pickup, end: trip.Dropoff},
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Fetch both legs concurrently; the first failure cancels the other.
	routes := make([]ports.RouteResult, len(specs))
	errs := make([]error, len(specs))
	var wg sync.WaitGroup

	for i, spec := range specs {
		wg.Add(1)
		go func(i int, spec legSpec) {
			defer wg.Done()

			route, err := provider.GetRoute(ctx, spec.start.Coordinates, spec.end.Coordinates)
			if err != nil {
				errs[i] = fmt.Errorf(
					"plan trip: get route %q -> %q: %w",
					spec.start.Name, spec.end.Name, err,
				)
				cancel()
				return
			}
			routes[i] = route
		}(i, spec)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	legs := make([]domain.RouteLeg, 0, len(specs))
	for i, spec := range specs {
		leg := domain.RouteLeg{
			StartName:     spec.start.Name,
			EndName:       spec.end.Name,
			DistanceMiles: routes[i].DistanceMiles,
			DurationHours: routes[i].DurationHours,
			Geometry:      routes[i].Geometry,
		}
		leg.NormalizeGeometry()
		legs = append(legs, leg)
	}

	schedule := sim.Simulate(legs, trip.InitialHoursUsed, 0)
	eldLogs := BuildELDLogs(schedule)

	stats := domain.TripStats{}
	for _, leg := range legs {
		stats.TotalDistanceMiles += leg.DistanceMiles
		stats.TotalDrivingHours += leg.DurationHours
	}
	for _, event := range schedule {
		if event.Day > stats.TotalTripDays {
			stats.TotalTripDays = event.Day
		}
	}

	result := &PlanTripResult{
		Legs:      legs,
		Schedule:  schedule,
		ELDLogs:   eldLogs,
		Waypoints: buildWaypoints(trip, schedule),
		Stats:     stats,
	}

	if repo != nil {
		id, err := repo.SaveTrip(ctx, trip, legs, schedule, stats)
		if err != nil {
			log.Printf("save trip failed: %v", err)
		} else {
			result.TripID = id
		}
	}

	return result, nil
}

// buildWaypoints derives the map markers for a planned trip: the trip
// endpoints plus every generated fuel and rest stop.
func buildWaypoints(trip domain.Trip, schedule []domain.ScheduleEvent) []domain.Waypoint {
	waypoints := make([]domain.Waypoint, 0, 3+len(schedule))

	waypoints = append(waypoints,
		domain.Waypoint{Name: trip.Current.Name, Lat: trip.Current.Lat, Lng: trip.Current.Lon, Type: "START"},
		domain.Waypoint{Name: trip.Pickup.Name, Lat: trip.Pickup.Lat, Lng: trip.Pickup.Lon, Type: "PICKUP"},
	)

	for _, event := range schedule {
		switch event.Activity {
		case domain.ActivityFuel:
			waypoints = append(waypoints, domain.Waypoint{
				Name: "FUEL Stop",
				Lat:  event.Coord.Lat,
				Lng:  event.Coord.Lon,
				Type: "FUEL",
			})
		case domain.ActivityRest, domain.ActivityBreak:
			waypoints = append(waypoints, domain.Waypoint{
				Name: string(event.Activity) + " Stop",
				Lat:  event.Coord.Lat,
				Lng:  event.Coord.Lon,
				Type: "REST",
			})
		}
	}

	waypoints = append(waypoints, domain.Waypoint{
		Name: trip.Dropoff.Name,
		Lat:  trip.Dropoff.Lat,
		Lng:  trip.Dropoff.Lon,
		Type: "DROPOFF",
	})

	return waypoints
}
