package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/derek-dv/eld-planner/internal/domain"
	"github.com/derek-dv/eld-planner/internal/ports"
)

// SQLite-backed implementation of the TripRepository port.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Store a planned trip with its legs and generated stop events.
func (s *SqliteTripRepository) SaveTrip(
	ctx context.Context,
	trip domain.Trip,
	legs []domain.RouteLeg,
	schedule []domain.ScheduleEvent,
	stats domain.TripStats,
) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite trip repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("save trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertTrip := `
	INSERT INTO trips (
		current_name, pickup_name, dropoff_name, initial_hours_used,
		total_distance_miles, total_driving_hours, total_trip_days, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING trip_id;
	`

	var tripID int64
	err = tx.QueryRowContext(
		ctx, insertTrip,
		trip.Current.Name, trip.Pickup.Name, trip.Dropoff.Name,
		trip.InitialHoursUsed,
		stats.TotalDistanceMiles, stats.TotalDrivingHours, stats.TotalTripDays,
		time.Now().UTC().Format(time.RFC3339Nano),
	).Scan(&tripID)
	if err != nil {
		return 0, fmt.Errorf("save trip: insert trip: %w", err)
	}

	insertLeg := `
	INSERT INTO route_legs (trip_id, leg_index, start_name, end_name, distance_miles, duration_hours)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	legStmt, err := tx.PrepareContext(ctx, insertLeg)
	if err != nil {
		return 0, fmt.Errorf("save trip: prepare leg insert: %w", err)
	}
	defer legStmt.Close()

	for i, leg := range legs {
		if _, err := legStmt.ExecContext(
			ctx, tripID, i, leg.StartName, leg.EndName, leg.DistanceMiles, leg.DurationHours,
		); err != nil {
			return 0, fmt.Errorf("save trip: insert leg %d: %w", i, err)
		}
	}

	insertStop := `
	INSERT INTO rest_stops (trip_id, stop_type, duration_hours, day, lon, lat)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	stopStmt, err := tx.PrepareContext(ctx, insertStop)
	if err != nil {
		return 0, fmt.Errorf("save trip: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	for _, event := range schedule {
		// Driving stints are derivable from the legs; only generated stops
		// are persisted.
		if event.Activity == domain.ActivityDriving {
			continue
		}

		if _, err := stopStmt.ExecContext(
			ctx, tripID, string(event.Activity), event.DurationHours,
			event.Day, event.Coord.Lon, event.Coord.Lat,
		); err != nil {
			return 0, fmt.Errorf("save trip: insert %s stop: %w", event.Activity, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save trip: commit tx: %w", err)
	}

	return tripID, nil
}

// Return summaries of previously planned trips, most recent first.
func (s *SqliteTripRepository) ListTrips(ctx context.Context) ([]ports.TripRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		trip_id, current_name, pickup_name, dropoff_name, initial_hours_used,
		total_distance_miles, total_driving_hours, total_trip_days, created_at
	FROM trips
	ORDER BY trip_id DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]ports.TripRecord, 0, 16)
	for rows.Next() {
		var t ports.TripRecord
		var createdAt string
		err := rows.Scan(
			&t.TripID, &t.CurrentName, &t.PickupName, &t.DropoffName,
			&t.InitialHoursUsed, &t.TotalDistanceMiles, &t.TotalDrivingHours,
			&t.TotalTripDays, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("list trips: parse created_at %q: %w", createdAt, err)
		}
		trips = append(trips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}
