package domain

// ActivityType classifies a single schedule event.
type ActivityType string

const (
	ActivityDriving ActivityType = "DRIVING"
	ActivityBreak   ActivityType = "BREAK"
	ActivityRest    ActivityType = "REST"
	ActivityRestart ActivityType = "RESTART"
	ActivityPickup  ActivityType = "PICKUP"
	ActivityDropoff ActivityType = "DROPOFF"
	ActivityFuel    ActivityType = "FUEL"
)

// DutyStatus is an ELD duty-status code.
type DutyStatus string

const (
	StatusDriving      DutyStatus = "D"
	StatusOnDuty       DutyStatus = "ON"
	StatusOffDuty      DutyStatus = "OFF"
	StatusSleeperBerth DutyStatus = "SB"
)

// ScheduleEvent is one entry of the simulated driving schedule.
//
// Events are append-only: the simulator never mutates an event after emitting
// it, and days are monotonically non-decreasing across the event list.
// StartDutyHours and EndDutyHours are duty-clock hours of the event's day.
type ScheduleEvent struct {
	Activity       ActivityType
	LegIndex       int
	DurationHours  float64
	Day            int
	StartDutyHours float64
	EndDutyHours   float64
	Coord          Coordinates

	// DistanceMiles and CycleHoursRemaining are set on DRIVING events only.
	DistanceMiles       *float64
	CycleHoursRemaining *float64

	// RestartType is set on RESTART events only ("34-hour").
	RestartType string
}

// LogEntry is a single duty-status period within a daily log.
type LogEntry struct {
	Status              DutyStatus
	StartHour           float64
	EndHour             float64
	Activity            ActivityType
	LegIndex            int
	Coord               *Coordinates
	CycleHoursRemaining *float64
}

// DailyLog is the ELD-style duty-status record for one abstract day.
// Days are sequential integers starting at 1, not calendar dates.
type DailyLog struct {
	Day        int
	Activities []LogEntry
}
