package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/derek-dv/eld-planner/internal/adapters/cache"
	"github.com/derek-dv/eld-planner/internal/adapters/repositories"
	"github.com/derek-dv/eld-planner/internal/adapters/routing"
	"github.com/derek-dv/eld-planner/internal/api"
	"github.com/derek-dv/eld-planner/internal/config"
	"github.com/derek-dv/eld-planner/internal/ports"
	"github.com/derek-dv/eld-planner/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, OSRM) behind ports and starts
// the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := os.Getenv("SEED_PATH")
	osrmURL := config.Get("OSRM_BASE_URL", "https://router.project-osrm.org")
	redisAddr := os.Getenv("REDIS_ADDR")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema (and optionally seed named locations) on startup.
	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}
	if seedPath != "" {
		if err := repositories.SeedFromJSON(db, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	// Prefer the shared Redis route cache when configured; fall back to the
	// embedded SQLite-backed cache otherwise.
	var routeCache ports.RouteCache
	if redisAddr != "" {
		redisCache, err := cache.NewRedisRouteCache(redisAddr, 24*time.Hour)
		if err != nil {
			log.Fatal(err)
		}
		defer redisCache.Close()
		routeCache = redisCache
		log.Printf("Route cache backend=redis addr=%s", redisAddr)
	} else {
		routeCache = cache.NewSQLRouteCache(db)
		log.Printf("Route cache backend=sqlite path=%s", dbPath)
	}

	provider := routing.NewOSRMRouteProvider(osrmURL, routeCache)
	repo := repositories.NewSqliteTripRepository(db)
	sim := services.NewHOSSimulator(services.DefaultHOSLimits())

	router := api.NewRouter(provider, repo, sim)

	// Timeouts are tuned for cold-cache trip planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
