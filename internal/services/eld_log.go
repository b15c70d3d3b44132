package services

import (
	"slices"
	"sort"

	"github.com/derek-dv/eld-planner/internal/domain"
)

// dutyStatusFor maps a schedule activity onto its ELD duty-status code.
func dutyStatusFor(activity domain.ActivityType) domain.DutyStatus {
	switch activity {
	case domain.ActivityDriving:
		return domain.StatusDriving
	case domain.ActivityPickup, domain.ActivityDropoff, domain.ActivityFuel:
		return domain.StatusOnDuty
	case domain.ActivityBreak:
		return domain.StatusOffDuty
	case domain.ActivityRest, domain.ActivityRestart:
		return domain.StatusSleeperBerth
	default:
		return domain.StatusOffDuty
	}
}

// BuildELDLogs transforms a simulated schedule into per-day duty-status logs.
//
// Events are grouped by day and ordered by their duty-clock start hour within
// each day. REST and RESTART entries are rendered as spanning to hour 24 of
// their day regardless of their actual duration. The input schedule is not
// modified.
func BuildELDLogs(schedule []domain.ScheduleEvent) []domain.DailyLog {
	byDay := make(map[int][]domain.ScheduleEvent)
	for _, event := range schedule {
		byDay[event.Day] = append(byDay[event.Day], event)
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	logs := make([]domain.DailyLog, 0, len(days))
	for _, day := range days {
		events := byDay[day]
		// Stable sort keeps emission order for events sharing a start hour.
		slices.SortStableFunc(events, func(a, b domain.ScheduleEvent) int {
			if a.StartDutyHours < b.StartDutyHours {
				return -1
			}
			if a.StartDutyHours > b.StartDutyHours {
				return 1
			}
			return 0
		})

		activities := make([]domain.LogEntry, 0, len(events))
		for _, event := range events {
			endHour := event.EndDutyHours
			if event.Activity == domain.ActivityRest || event.Activity == domain.ActivityRestart {
				// A rest period runs to the end of the log grid for its day,
				// even when the restart actually spans into the next day.
				endHour = 24
			}

			coord := event.Coord
			activities = append(activities, domain.LogEntry{
				Status:              dutyStatusFor(event.Activity),
				StartHour:           event.StartDutyHours,
				EndHour:             endHour,
				Activity:            event.Activity,
				LegIndex:            event.LegIndex,
				Coord:               &coord,
				CycleHoursRemaining: event.CycleHoursRemaining,
			})
		}

		logs = append(logs, domain.DailyLog{Day: day, Activities: activities})
	}

	return logs
}
