package api

import (
	"net/http"

	"github.com/derek-dv/eld-planner/internal/api/handlers"
	"github.com/derek-dv/eld-planner/internal/ports"
	"github.com/derek-dv/eld-planner/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	provider ports.RouteProvider,
	repo ports.TripRepository,
	sim *services.HOSSimulator,
) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Provider:  provider,
		Repo:      repo,
		Simulator: sim,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes", tripHandler.Plan)
	mux.HandleFunc("/trips", tripHandler.List)

	return loggingMiddleware(mux)
}
