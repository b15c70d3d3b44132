package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/derek-dv/eld-planner/internal/adapters/routing"
	"github.com/derek-dv/eld-planner/internal/api/dto"
	"github.com/derek-dv/eld-planner/internal/domain"
	"github.com/derek-dv/eld-planner/internal/ports"
	"github.com/derek-dv/eld-planner/internal/services"
)

type stubTripRepository struct {
	records []ports.TripRecord
	err     error
}

func (r *stubTripRepository) SaveTrip(
	ctx context.Context,
	trip domain.Trip,
	legs []domain.RouteLeg,
	schedule []domain.ScheduleEvent,
	stats domain.TripStats,
) (int64, error) {
	return 7, r.err
}

func (r *stubTripRepository) ListTrips(ctx context.Context) ([]ports.TripRecord, error) {
	return r.records, r.err
}

func newTestHandler(repo ports.TripRepository) *TripHandler {
	provider := routing.NewMockRouteProvider([]routing.MockRoute{
		{
			Start:    domain.Coordinates{Lon: -87.63, Lat: 41.88},
			End:      domain.Coordinates{Lon: -86.16, Lat: 39.77},
			Miles:    183,
			Hours:    3.1,
			Geometry: []domain.Coordinates{{Lon: -87.63, Lat: 41.88}, {Lon: -86.16, Lat: 39.77}},
		},
		{
			Start:    domain.Coordinates{Lon: -86.16, Lat: 39.77},
			End:      domain.Coordinates{Lon: -86.78, Lat: 36.16},
			Miles:    289,
			Hours:    4.5,
			Geometry: []domain.Coordinates{{Lon: -86.16, Lat: 39.77}, {Lon: -86.78, Lat: 36.16}},
		},
	})

	return &TripHandler{
		Provider:  provider,
		Repo:      repo,
		Simulator: services.NewHOSSimulator(services.DefaultHOSLimits()),
	}
}

const planBody = `{
	"current_location": {"name": "Chicago, IL", "lat": 41.88, "lng": -87.63},
	"pickup_location": {"name": "Indianapolis, IN", "lat": 39.77, "lng": -86.16},
	"dropoff_location": {"name": "Nashville, TN", "lat": 36.16, "lng": -86.78},
	"current_cycle_hours": 12.5
}`

func TestPlanTripHandler(t *testing.T) {
	h := newTestHandler(&stubTripRepository{})

	req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(planBody))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q, want application/json", ct)
	}

	var res dto.PlanTripResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.TripID != 7 {
		t.Fatalf("trip id = %d, want 7", res.TripID)
	}
	if len(res.RouteSegments) != 2 {
		t.Fatalf("segment count = %d, want 2", len(res.RouteSegments))
	}
	if res.RouteSegments[0].StartName != "Chicago, IL" {
		t.Fatalf("first segment start = %q, want Chicago, IL", res.RouteSegments[0].StartName)
	}
	if len(res.Schedule) == 0 || res.Schedule[0].ActivityType != string(domain.ActivityPickup) {
		t.Fatalf("schedule does not begin with a pickup: %+v", res.Schedule)
	}
	if len(res.ELDLogs) == 0 || res.ELDLogs[0].Date != "Day 1" {
		t.Fatalf("eld logs = %+v, want first log dated Day 1", res.ELDLogs)
	}
	if res.Stats.TotalDistance != 472 {
		t.Fatalf("total distance = %v, want 472", res.Stats.TotalDistance)
	}
	if len(res.Waypoints) < 3 || res.Waypoints[0].Type != "START" {
		t.Fatalf("waypoints = %+v, want START first", res.Waypoints)
	}
}

func TestPlanTripHandlerDefaultsLocationNames(t *testing.T) {
	h := newTestHandler(nil)

	body := `{
		"current_location": {"lat": 41.88, "lng": -87.63},
		"pickup_location": {"lat": 39.77, "lng": -86.16},
		"dropoff_location": {"lat": 36.16, "lng": -86.78}
	}`
	req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var res dto.PlanTripResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.RouteSegments[0].StartName != "Current Location" {
		t.Fatalf("start name = %q, want Current Location", res.RouteSegments[0].StartName)
	}
}

func TestPlanTripHandlerRejectsBadRequests(t *testing.T) {
	h := newTestHandler(nil)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"current_location":`},
		{"unknown field", `{"bogus": 1}`},
		{"trailing object", planBody + `{}`},
		{"missing locations", `{"current_cycle_hours": 5}`},
		{"latitude out of range", `{
			"current_location": {"lat": 95, "lng": -87.63},
			"pickup_location": {"lat": 39.77, "lng": -86.16},
			"dropoff_location": {"lat": 36.16, "lng": -86.78}
		}`},
		{"cycle hours out of range", `{
			"current_location": {"lat": 41.88, "lng": -87.63},
			"pickup_location": {"lat": 39.77, "lng": -86.16},
			"dropoff_location": {"lat": 36.16, "lng": -86.78},
			"current_cycle_hours": 80
		}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Plan(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPlanTripHandlerMethodNotAllowed(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/routes", nil)
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow = %q, want POST", allow)
	}
}

func TestPlanTripHandlerRoutingFailure(t *testing.T) {
	h := &TripHandler{
		Provider:  routing.NewMockRouteProvider(nil),
		Simulator: services.NewHOSSimulator(services.DefaultHOSLimits()),
	}

	req := httptest.NewRequest(http.MethodPost, "/routes", strings.NewReader(planBody))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestListTripsHandler(t *testing.T) {
	created := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	repo := &stubTripRepository{records: []ports.TripRecord{{
		TripID:             3,
		CurrentName:        "Chicago, IL",
		PickupName:         "Indianapolis, IN",
		DropoffName:        "Nashville, TN",
		InitialHoursUsed:   12.5,
		TotalDistanceMiles: 472,
		TotalDrivingHours:  7.6,
		TotalTripDays:      1,
		CreatedAt:          created,
	}}}
	h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var res dto.ListTripsResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Trips) != 1 {
		t.Fatalf("trip count = %d, want 1", len(res.Trips))
	}
	if res.Trips[0].TripID != 3 || res.Trips[0].CreatedAt != "2026-08-20T14:30:00Z" {
		t.Fatalf("trip = %+v, want id 3 created 2026-08-20T14:30:00Z", res.Trips[0])
	}
}

func TestListTripsHandlerWithoutRepository(t *testing.T) {
	h := newTestHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
