package ports

import (
	"context"
	"time"

	"github.com/derek-dv/eld-planner/internal/domain"
)

// TripRecord is a persisted summary of a planned trip.
type TripRecord struct {
	TripID             int64
	CurrentName        string
	PickupName         string
	DropoffName        string
	InitialHoursUsed   float64
	TotalDistanceMiles float64
	TotalDrivingHours  float64
	TotalTripDays      int
	CreatedAt          time.Time
}

// Port: a boundary for persisting planned trips and their generated stops.
type TripRepository interface {
	// Store a planned trip with its legs and the schedule's stop events.
	// Returns the identifier of the stored trip.
	SaveTrip(
		ctx context.Context,
		trip domain.Trip,
		legs []domain.RouteLeg,
		schedule []domain.ScheduleEvent,
		stats domain.TripStats,
	) (int64, error)

	// Retrieve summaries of previously planned trips, most recent first.
	ListTrips(ctx context.Context) ([]TripRecord, error)
}
