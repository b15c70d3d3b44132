package services

import (
	"math"

	"github.com/derek-dv/eld-planner/internal/domain"
)

// HOSLimits holds the regulatory limits applied by the schedule simulator.
//
// The value is immutable once handed to a simulator, so distinct simulators
// with distinct rule sets can run concurrently without cross-contamination.
type HOSLimits struct {
	MaxDailyDrivingHours float64
	MaxDailyDutyHours    float64
	MinRestPeriodHours   float64
	BreakAfterHours      float64
	BreakDurationHours   float64
	MaxCycleHours        float64
	CycleDays            int
	RestartDurationHours float64
	FuelDistanceMiles    float64
	FuelDurationHours    float64
	PickupDurationHours  float64
	DropoffDurationHours float64
	DefaultSpeedMPH      float64
}

// DefaultHOSLimits returns the federal property-carrying driver rule set:
// 11-hour driving limit, 14-hour duty limit, 70 hours over 8 days.
func DefaultHOSLimits() HOSLimits {
	return HOSLimits{
		MaxDailyDrivingHours: 11.0,
		MaxDailyDutyHours:    14.0,
		MinRestPeriodHours:   10.0,
		BreakAfterHours:      8.0,
		BreakDurationHours:   0.5,
		MaxCycleHours:        70.0,
		CycleDays:            8,
		RestartDurationHours: 34.0,
		FuelDistanceMiles:    1000.0,
		FuelDurationHours:    1.0,
		PickupDurationHours:  1.0,
		DropoffDurationHours: 1.0,
		DefaultSpeedMPH:      55.0,
	}
}

// HOSSimulator computes a multi-day duty schedule for a sequence of route
// legs under Hours-of-Service rules.
//
// Simulate is a pure function of its arguments: all transient state lives in
// a per-call simState, so a single simulator is safe for concurrent use.
type HOSSimulator struct {
	limits HOSLimits
}

func NewHOSSimulator(limits HOSLimits) *HOSSimulator {
	return &HOSSimulator{limits: limits}
}

// Limits returns the rule set this simulator applies.
func (s *HOSSimulator) Limits() HOSLimits { return s.limits }

// simState is the transient bookkeeping for one Simulate call.
type simState struct {
	day               int
	dayDriving        float64
	dayDuty           float64
	hoursSinceBreak   float64
	distanceSinceFuel float64
	pickupDone        bool
	location          domain.Coordinates
	remaining         []domain.Coordinates
	window            *dutyWindow
}

// accrueDuty counts non-driving on-duty time against the daily duty clock,
// the break clock, and the rolling cycle window.
func (st *simState) accrueDuty(hours float64) {
	st.dayDuty += hours
	st.hoursSinceBreak += hours
	st.window.Accrue(hours)
}

// Simulate produces the ordered schedule of driving stints, breaks, rests,
// restarts, and stops for the given legs.
//
// initialHoursUsed is the duty time already consumed in the current 8-day
// cycle; it is attributed to day one of the simulation. The pickup stop is
// emitted at the start of the leg with index pickupLegIndex, and exactly one
// dropoff stop is emitted after the final leg.
func (s *HOSSimulator) Simulate(
	legs []domain.RouteLeg,
	initialHoursUsed float64,
	pickupLegIndex int,
) []domain.ScheduleEvent {
	st := &simState{
		day:    1,
		window: newDutyWindow(s.limits.CycleDays, initialHoursUsed),
	}

	schedule := make([]domain.ScheduleEvent, 0, 4*len(legs))

	for i, leg := range legs {
		speed := s.limits.DefaultSpeedMPH
		if leg.DurationHours > 0 {
			speed = leg.DistanceMiles / leg.DurationHours
		}
		remainingHours := leg.DurationHours

		geometry := leg.Geometry
		if len(geometry) < 2 {
			geometry = []domain.Coordinates{{}, {}}
		}
		st.location = geometry[0]
		st.remaining = geometry

		if i == pickupLegIndex && !st.pickupDone {
			schedule = append(schedule, domain.ScheduleEvent{
				Activity:       domain.ActivityPickup,
				LegIndex:       i,
				DurationHours:  s.limits.PickupDurationHours,
				Day:            st.day,
				StartDutyHours: st.dayDuty,
				EndDutyHours:   st.dayDuty + s.limits.PickupDurationHours,
				Coord:          st.location,
			})
			st.accrueDuty(s.limits.PickupDurationHours)
			st.pickupDone = true
		}

		for remainingHours > 0 {
			// The 30-minute break check fires only between stints. A stint
			// granted below may carry hoursSinceBreak past the threshold
			// before the next check; that overshoot is intended behavior.
			if st.hoursSinceBreak >= s.limits.BreakAfterHours {
				schedule = append(schedule, domain.ScheduleEvent{
					Activity:       domain.ActivityBreak,
					LegIndex:       i,
					DurationHours:  s.limits.BreakDurationHours,
					Day:            st.day,
					StartDutyHours: st.dayDuty,
					EndDutyHours:   st.dayDuty + s.limits.BreakDurationHours,
					Coord:          st.location,
				})
				st.dayDuty += s.limits.BreakDurationHours
				st.window.Accrue(s.limits.BreakDurationHours)
				st.hoursSinceBreak = 0
			}

			totalCycleHours := st.window.Total()
			remainingCycle := math.Max(0, s.limits.MaxCycleHours-totalCycleHours)

			available := math.Min(
				s.limits.MaxDailyDrivingHours-st.dayDriving,
				math.Min(
					s.limits.MaxDailyDutyHours-st.dayDuty,
					math.Min(remainingCycle, remainingHours),
				),
			)

			if available <= 0 {
				if remainingCycle <= 0 {
					// The cycle is exhausted: only a 34-hour restart frees
					// more hours. It spans at least two calendar days.
					schedule = append(schedule, domain.ScheduleEvent{
						Activity:       domain.ActivityRestart,
						LegIndex:       i,
						DurationHours:  s.limits.RestartDurationHours,
						Day:            st.day,
						StartDutyHours: st.dayDuty,
						EndDutyHours:   0,
						Coord:          st.location,
						RestartType:    "34-hour",
					})
					st.day += 2
					st.dayDriving = 0
					st.dayDuty = 0
					st.hoursSinceBreak = 0
					st.window.Reset()
				} else {
					schedule = append(schedule, domain.ScheduleEvent{
						Activity:       domain.ActivityRest,
						LegIndex:       i,
						DurationHours:  s.limits.MinRestPeriodHours,
						Day:            st.day,
						StartDutyHours: st.dayDuty,
						EndDutyHours:   0,
						Coord:          st.location,
					})
					st.day++
					st.dayDriving = 0
					st.dayDuty = 0
					st.hoursSinceBreak = 0
					st.window.Shift()
				}
				continue
			}

			distanceCovered := speed * available

			if len(st.remaining) > 1 {
				point, rest := ProjectAlongRoute(st.remaining, distanceCovered)
				st.location = point
				if len(rest) > 0 {
					st.remaining = rest
				}
			}

			distance := distanceCovered
			cycleRemaining := s.limits.MaxCycleHours - (totalCycleHours + available)
			schedule = append(schedule, domain.ScheduleEvent{
				Activity:            domain.ActivityDriving,
				LegIndex:            i,
				DurationHours:       available,
				Day:                 st.day,
				StartDutyHours:      st.dayDuty,
				EndDutyHours:        st.dayDuty + available,
				Coord:               st.location,
				DistanceMiles:       &distance,
				CycleHoursRemaining: &cycleRemaining,
			})

			st.dayDriving += available
			st.accrueDuty(available)
			remainingHours -= available
			st.distanceSinceFuel += distanceCovered

			if st.distanceSinceFuel >= s.limits.FuelDistanceMiles && len(st.remaining) > 0 {
				// Permissive projection: a remainder collapsed to a single
				// point places the stop at that point, not at a stale
				// location.
				fuelDistance := math.Min(st.distanceSinceFuel, s.limits.FuelDistanceMiles)
				point, rest := ProjectAlongRoute(st.remaining, fuelDistance)
				st.location = point
				if len(rest) > 0 {
					st.remaining = rest
				}
				schedule = append(schedule, domain.ScheduleEvent{
					Activity:       domain.ActivityFuel,
					LegIndex:       i,
					DurationHours:  s.limits.FuelDurationHours,
					Day:            st.day,
					StartDutyHours: st.dayDuty,
					EndDutyHours:   st.dayDuty + s.limits.FuelDurationHours,
					Coord:          st.location,
				})
				st.accrueDuty(s.limits.FuelDurationHours)
				st.distanceSinceFuel = 0
			}
		}
	}

	if len(legs) > 0 {
		last := legs[len(legs)-1]
		if len(last.Geometry) > 0 {
			st.location = last.Geometry[len(last.Geometry)-1]
		}
		schedule = append(schedule, domain.ScheduleEvent{
			Activity:       domain.ActivityDropoff,
			LegIndex:       len(legs),
			DurationHours:  s.limits.DropoffDurationHours,
			Day:            st.day,
			StartDutyHours: st.dayDuty,
			EndDutyHours:   st.dayDuty + s.limits.DropoffDurationHours,
			Coord:          st.location,
		})
	}

	return schedule
}
