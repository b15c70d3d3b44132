package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the database schema for trips, legs, stops, and caches.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id INTEGER PRIMARY KEY,
		current_name TEXT NOT NULL,
		pickup_name TEXT NOT NULL,
		dropoff_name TEXT NOT NULL,
		initial_hours_used REAL NOT NULL,
		total_distance_miles REAL NOT NULL,
		total_driving_hours REAL NOT NULL,
		total_trip_days INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createLegsQuery := `
	CREATE TABLE IF NOT EXISTS route_legs (
		trip_id INTEGER NOT NULL,
		leg_index INTEGER NOT NULL,
		start_name TEXT NOT NULL,
		end_name TEXT NOT NULL,
		distance_miles REAL NOT NULL,
		duration_hours REAL NOT NULL,
		PRIMARY KEY (trip_id, leg_index)
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS rest_stops (
		trip_id INTEGER NOT NULL,
		stop_type TEXT NOT NULL,
		duration_hours REAL NOT NULL,
		day INTEGER NOT NULL,
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		name TEXT PRIMARY KEY,
		lon REAL NOT NULL,
		lat REAL NOT NULL
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_miles REAL NOT NULL,
		duration_hours REAL NOT NULL,
		geometry TEXT NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createStopIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_rest_stops_trip
	ON rest_stops(trip_id);
	`

	statements := []string{
		createTripsQuery,
		createLegsQuery,
		createStopsQuery,
		createLocationsQuery,
		createRouteCacheQuery,
		createStopIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type LocationSeed struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// LoadLocationSeeds reads and validates named locations from a JSON file.
func LoadLocationSeeds(jsonPath string) ([]LocationSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed locations: read %q: %w", jsonPath, err)
	}

	var data []LocationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed locations: parse json: %w", err)
	}

	rows := make([]LocationSeed, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("seed locations: item at index %d: name cannot be empty", i+1)
		}
		if item.Lat < -90 || item.Lat > 90 || item.Lng < -180 || item.Lng > 180 {
			return nil, fmt.Errorf(
				"seed locations: item %q: coordinates out of range: lat=%v lng=%v",
				name, item.Lat, item.Lng,
			)
		}
		rows = append(rows, LocationSeed{Name: name, Lat: item.Lat, Lng: item.Lng})
	}

	return rows, nil
}

// Populate the named-locations table from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	rows, err := LoadLocationSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO locations (name, lon, lat)
	VALUES (?, ?, ?)
	ON CONFLICT (name) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range rows {
		if _, err := stmt.Exec(l.Name, l.Lng, l.Lat); err != nil {
			return fmt.Errorf("seed locations: insert %q: %w", l.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}
