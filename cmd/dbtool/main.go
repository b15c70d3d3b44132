package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/derek-dv/eld-planner/internal/adapters/repositories"
	"github.com/derek-dv/eld-planner/internal/config"
	"github.com/derek-dv/eld-planner/internal/platform/db"
)

// dbtool initializes the schema and seeds named locations into a postgres
// database, for deployments that use postgres instead of embedded SQLite.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/locations.json")
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal(err)
	}
}

// Postgres variants of the embedded schema: identity trip ids and
// timestamptz instead of the SQLite text timestamp.
var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS trips (
		trip_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		current_name TEXT NOT NULL,
		pickup_name TEXT NOT NULL,
		dropoff_name TEXT NOT NULL,
		initial_hours_used DOUBLE PRECISION NOT NULL,
		total_distance_miles DOUBLE PRECISION NOT NULL,
		total_driving_hours DOUBLE PRECISION NOT NULL,
		total_trip_days INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS route_legs (
		trip_id BIGINT NOT NULL,
		leg_index INTEGER NOT NULL,
		start_name TEXT NOT NULL,
		end_name TEXT NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (trip_id, leg_index)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS rest_stops (
		trip_id BIGINT NOT NULL,
		stop_type TEXT NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		day INTEGER NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS locations (
		name TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS route_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_miles DOUBLE PRECISION NOT NULL,
		duration_hours DOUBLE PRECISION NOT NULL,
		geometry TEXT NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_rest_stops_trip
	ON rest_stops(trip_id);
	`,
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	for i, stmt := range postgresSchema {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}
	log.Println("Schema ready.")

	log.Println("Seeding locations...")
	seeds, err := repositories.LoadLocationSeeds(seedPath)
	if err != nil {
		return err
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer tx.Rollback()

	upsert := `
	INSERT INTO locations (name, lon, lat)
	VALUES ($1, $2, $3)
	ON CONFLICT (name) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`
	stmt, err := tx.Prepare(upsert)
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range seeds {
		if _, err := stmt.Exec(l.Name, l.Lng, l.Lat); err != nil {
			return fmt.Errorf("seed locations: insert %q: %w", l.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}
	log.Printf("Seeding complete. locations=%d", len(seeds))

	return nil
}
