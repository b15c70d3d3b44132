package dto

// LocationRequest is a named coordinate in an incoming plan request.
type LocationRequest struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type PlanTripRequest struct {
	CurrentLocation   *LocationRequest `json:"current_location"`
	PickupLocation    *LocationRequest `json:"pickup_location"`
	DropoffLocation   *LocationRequest `json:"dropoff_location"`
	CurrentCycleHours float64          `json:"current_cycle_hours"`
}

type GeometryResponse struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type RouteSegmentResponse struct {
	StartName     string           `json:"start_name"`
	EndName       string           `json:"end_name"`
	DistanceMiles float64          `json:"distance_miles"`
	DurationHours float64          `json:"duration_hours"`
	Geometry      GeometryResponse `json:"geometry"`
}

type ScheduleEventResponse struct {
	ActivityType        string    `json:"activity_type"`
	LegIndex            int       `json:"leg_index"`
	DurationHours       float64   `json:"duration_hours"`
	Day                 int       `json:"day"`
	StartDutyHours      float64   `json:"start_duty_hours"`
	EndDutyHours        float64   `json:"end_duty_hours"`
	Coord               []float64 `json:"coord"`
	DistanceMiles       *float64  `json:"distance_miles,omitempty"`
	CycleHoursRemaining *float64  `json:"cycle_hours_remaining,omitempty"`
	RestartType         string    `json:"restart_type,omitempty"`
}

type LogEntryResponse struct {
	Status              string    `json:"status"`
	StartHour           float64   `json:"start_hour"`
	EndHour             float64   `json:"end_hour"`
	ActivityType        string    `json:"activity_type"`
	LegIndex            int       `json:"leg_index"`
	Coord               []float64 `json:"coord,omitempty"`
	CycleHoursRemaining *float64  `json:"cycle_hours_remaining,omitempty"`
}

type DailyLogResponse struct {
	Day        int                `json:"day"`
	Date       string             `json:"date"`
	Activities []LogEntryResponse `json:"activities"`
}

type WaypointResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Type string  `json:"type"`
}

type TripStatsResponse struct {
	TotalDistance     float64 `json:"total_distance"`
	TotalDrivingHours float64 `json:"total_driving_hours"`
	TotalTripDays     int     `json:"total_trip_days"`
}

type PlanTripResponse struct {
	TripID        int64                   `json:"trip_id,omitempty"`
	RouteSegments []RouteSegmentResponse  `json:"route_segments"`
	Schedule      []ScheduleEventResponse `json:"schedule"`
	ELDLogs       []DailyLogResponse      `json:"eld_logs"`
	Waypoints     []WaypointResponse      `json:"waypoints"`
	Stats         TripStatsResponse       `json:"stats"`
}

type TripSummaryResponse struct {
	TripID             int64   `json:"trip_id"`
	CurrentName        string  `json:"current_name"`
	PickupName         string  `json:"pickup_name"`
	DropoffName        string  `json:"dropoff_name"`
	InitialHoursUsed   float64 `json:"initial_hours_used"`
	TotalDistanceMiles float64 `json:"total_distance_miles"`
	TotalDrivingHours  float64 `json:"total_driving_hours"`
	TotalTripDays      int     `json:"total_trip_days"`
	CreatedAt          string  `json:"created_at"`
}

type ListTripsResponse struct {
	Trips []TripSummaryResponse `json:"trips"`
}
