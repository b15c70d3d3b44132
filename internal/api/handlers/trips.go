package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/derek-dv/eld-planner/internal/api/dto"
	"github.com/derek-dv/eld-planner/internal/domain"
	"github.com/derek-dv/eld-planner/internal/ports"
	"github.com/derek-dv/eld-planner/internal/services"
)

// TripHandler plans HOS-compliant trips and lists previously planned ones.
// It coordinates the route provider, the schedule simulator, and the trip
// repository behind the /routes and /trips endpoints.
type TripHandler struct {
	Provider  ports.RouteProvider
	Repo      ports.TripRepository
	Simulator *services.HOSSimulator
}

func toLocation(l *dto.LocationRequest, fallbackName string) domain.Location {
	name := strings.TrimSpace(l.Name)
	if name == "" {
		name = fallbackName
	}
	return domain.Location{
		Name:        name,
		Coordinates: domain.Coordinates{Lon: l.Lng, Lat: l.Lat},
	}
}

// Plan computes the HOS schedule, ELD logs, waypoints, and stats for a trip.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.CurrentLocation == nil || req.PickupLocation == nil || req.DropoffLocation == nil {
		writeError(w, r, http.StatusBadRequest, "missing required location data")
		return
	}

	trip := domain.Trip{
		Current:          toLocation(req.CurrentLocation, "Current Location"),
		Pickup:           toLocation(req.PickupLocation, "Pickup Location"),
		Dropoff:          toLocation(req.DropoffLocation, "Dropoff Location"),
		InitialHoursUsed: req.CurrentCycleHours,
	}
	if err := trip.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := services.PlanTrip(r.Context(), trip, h.Provider, h.Repo, h.Simulator)
	if err != nil {
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(result))
}

// List returns summaries of previously planned trips.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Repo == nil {
		writeError(w, r, http.StatusNotFound, "trip persistence is not configured")
		return
	}

	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripSummaryResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripSummaryResponse{
			TripID:             t.TripID,
			CurrentName:        t.CurrentName,
			PickupName:         t.PickupName,
			DropoffName:        t.DropoffName,
			InitialHoursUsed:   t.InitialHoursUsed,
			TotalDistanceMiles: t.TotalDistanceMiles,
			TotalDrivingHours:  t.TotalDrivingHours,
			TotalTripDays:      t.TotalTripDays,
			CreatedAt:          t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func toPlanResponse(result *services.PlanTripResult) dto.PlanTripResponse {
	segments := make([]dto.RouteSegmentResponse, 0, len(result.Legs))
	for _, leg := range result.Legs {
		coords := make([][]float64, 0, len(leg.Geometry))
		for _, c := range leg.Geometry {
			coords = append(coords, c.CoordsToList())
		}
		segments = append(segments, dto.RouteSegmentResponse{
			StartName:     leg.StartName,
			EndName:       leg.EndName,
			DistanceMiles: leg.DistanceMiles,
			DurationHours: leg.DurationHours,
			Geometry:      dto.GeometryResponse{Coordinates: coords},
		})
	}

	schedule := make([]dto.ScheduleEventResponse, 0, len(result.Schedule))
	for _, event := range result.Schedule {
		schedule = append(schedule, dto.ScheduleEventResponse{
			ActivityType:        string(event.Activity),
			LegIndex:            event.LegIndex,
			DurationHours:       event.DurationHours,
			Day:                 event.Day,
			StartDutyHours:      event.StartDutyHours,
			EndDutyHours:        event.EndDutyHours,
			Coord:               event.Coord.CoordsToList(),
			DistanceMiles:       event.DistanceMiles,
			CycleHoursRemaining: event.CycleHoursRemaining,
			RestartType:         event.RestartType,
		})
	}

	logs := make([]dto.DailyLogResponse, 0, len(result.ELDLogs))
	for _, daily := range result.ELDLogs {
		activities := make([]dto.LogEntryResponse, 0, len(daily.Activities))
		for _, entry := range daily.Activities {
			var coord []float64
			if entry.Coord != nil {
				coord = entry.Coord.CoordsToList()
			}
			activities = append(activities, dto.LogEntryResponse{
				Status:              string(entry.Status),
				StartHour:           entry.StartHour,
				EndHour:             entry.EndHour,
				ActivityType:        string(entry.Activity),
				LegIndex:            entry.LegIndex,
				Coord:               coord,
				CycleHoursRemaining: entry.CycleHoursRemaining,
			})
		}
		logs = append(logs, dto.DailyLogResponse{
			Day:        daily.Day,
			Date:       fmt.Sprintf("Day %d", daily.Day),
			Activities: activities,
		})
	}

	waypoints := make([]dto.WaypointResponse, 0, len(result.Waypoints))
	for _, wp := range result.Waypoints {
		waypoints = append(waypoints, dto.WaypointResponse{
			Name: wp.Name,
			Lat:  wp.Lat,
			Lng:  wp.Lng,
			Type: wp.Type,
		})
	}

	return dto.PlanTripResponse{
		TripID:        result.TripID,
		RouteSegments: segments,
		Schedule:      schedule,
		ELDLogs:       logs,
		Waypoints:     waypoints,
		Stats: dto.TripStatsResponse{
			TotalDistance:     result.Stats.TotalDistanceMiles,
			TotalDrivingHours: result.Stats.TotalDrivingHours,
			TotalTripDays:     result.Stats.TotalTripDays,
		},
	}
}
