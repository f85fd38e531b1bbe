package calendar

import (
	"time"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

// MemberDay is one member's utilization on one date. Hours is uncapped so
// overtime stays visible; the percent is capped at 100. The flags are
// informational and do not alter the numeric values.
type MemberDay struct {
	Date               time.Time `json:"date"`
	Hours              float64   `json:"hours"`
	UtilizationPercent float64   `json:"utilization_percent"`
	IsTimeOff          bool      `json:"is_time_off"`
	IsWeekend          bool      `json:"is_weekend"`
}

// MemberUtilization is one member's per-day breakdown plus their average.
// The average covers non-weekend days only.
type MemberUtilization struct {
	MemberID string      `json:"member_id"`
	Name     string      `json:"name"`
	Days     []MemberDay `json:"days"`
	Average  float64     `json:"average"`
}

// Report is the full utilization aggregation for a window. TeamAverage is
// the unweighted arithmetic mean of the member averages, not an hours-weighted
// mean.
type Report struct {
	Members     []MemberUtilization `json:"members"`
	TeamAverage float64             `json:"team_average"`
}

// Aggregate computes per-member, per-day utilization over the given days.
// Days flagged OutsideFocus (month-grid padding) are skipped. Cancelled
// entries and entries mirrored from external calendars contribute no hours;
// an all-day entry contributes exactly capacityHoursPerDay, a timed entry its
// duration within the day in decimal hours.
func Aggregate(entries []model.ScheduleEntry, roster []model.TeamMember, days []Day, capacityHoursPerDay float64) Report {
	if capacityHoursPerDay <= 0 {
		capacityHoursPerDay = 8
	}

	byMember := make(map[string][]model.ScheduleEntry, len(roster))
	for _, e := range entries {
		byMember[e.MemberID] = append(byMember[e.MemberID], e)
	}

	report := Report{Members: make([]MemberUtilization, 0, len(roster))}
	var averageSum float64

	for _, member := range roster {
		mu := MemberUtilization{MemberID: member.MemberID, Name: member.Name}
		var weekdayHours float64
		var weekdayCount int

		for _, day := range days {
			if day.OutsideFocus {
				continue
			}

			md := MemberDay{
				Date:      day.Date,
				IsWeekend: IsWeekend(day.Date),
			}

			for _, e := range byMember[member.MemberID] {
				if e.Source == model.EntrySourceExternal {
					continue
				}
				if e.Status == model.EntryStatusCancelled {
					continue
				}
				start, end := e.EffectiveSpan()
				dayStart := StartOfDay(day.Date)
				dayEnd := dayStart.AddDate(0, 0, 1)
				if !Overlaps(start, end, dayStart, dayEnd) {
					continue
				}
				if e.EntryType == model.EntryTypeTimeOff {
					md.IsTimeOff = true
				}
				if e.AllDay {
					md.Hours += capacityHoursPerDay
				} else {
					md.Hours += clampedHours(start, end, dayStart, dayEnd)
				}
			}

			md.UtilizationPercent = md.Hours / capacityHoursPerDay * 100
			if md.UtilizationPercent > 100 {
				md.UtilizationPercent = 100
			}

			if !md.IsWeekend {
				weekdayHours += md.Hours
				weekdayCount++
			}

			mu.Days = append(mu.Days, md)
		}

		if weekdayCount > 0 {
			mu.Average = weekdayHours / (float64(weekdayCount) * capacityHoursPerDay) * 100
		}
		averageSum += mu.Average
		report.Members = append(report.Members, mu)
	}

	if len(report.Members) > 0 {
		report.TeamAverage = averageSum / float64(len(report.Members))
	}

	return report
}

// clampedHours returns the decimal hours of [start, end) falling inside
// [dayStart, dayEnd). For entries contained in a single day this is exactly
// end minus start.
func clampedHours(start, end, dayStart, dayEnd time.Time) float64 {
	if start.Before(dayStart) {
		start = dayStart
	}
	if end.After(dayEnd) {
		end = dayEnd
	}
	if !start.Before(end) {
		return 0
	}
	return end.Sub(start).Hours()
}
