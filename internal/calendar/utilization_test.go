package calendar

import (
	"math"
	"testing"
	"time"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

func member(id, name string) model.TeamMember {
	return model.TeamMember{MemberID: id, Name: name, IsActive: true, InviteAccepted: true}
}

func weekDays(anchor time.Time) []Day {
	return Compute(GranularityWeek, anchor).Days
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregate_TimedHoursAndPercent(t *testing.T) {
	days := weekDays(date(2024, 6, 3))
	entries := []model.ScheduleEntry{
		// 6 hours on Monday
		timedEntry("e1", "m1", at(2024, 6, 3, 8, 0), at(2024, 6, 3, 14, 0)),
		// 30 minutes on Tuesday, decimal-preserving
		timedEntry("e2", "m1", at(2024, 6, 4, 9, 0), at(2024, 6, 4, 9, 30)),
	}

	report := Aggregate(entries, []model.TeamMember{member("m1", "Maja")}, days, 8)
	mon := report.Members[0].Days[0]
	tue := report.Members[0].Days[1]

	if !approxEqual(mon.Hours, 6) {
		t.Errorf("Monday hours = %v, want 6", mon.Hours)
	}
	if !approxEqual(mon.UtilizationPercent, 75) {
		t.Errorf("Monday percent = %v, want 75", mon.UtilizationPercent)
	}
	if !approxEqual(tue.Hours, 0.5) {
		t.Errorf("Tuesday hours = %v, want 0.5", tue.Hours)
	}
}

func TestAggregate_PercentCappedAt100(t *testing.T) {
	days := weekDays(date(2024, 6, 3))
	entries := []model.ScheduleEntry{
		timedEntry("e1", "m1", at(2024, 6, 3, 6, 0), at(2024, 6, 3, 18, 0)), // 12h > 8h capacity
	}

	report := Aggregate(entries, []model.TeamMember{member("m1", "Maja")}, days, 8)
	mon := report.Members[0].Days[0]

	if !approxEqual(mon.Hours, 12) {
		t.Errorf("raw hours = %v, want 12 (overtime stays visible)", mon.Hours)
	}
	if !approxEqual(mon.UtilizationPercent, 100) {
		t.Errorf("percent = %v, want capped 100", mon.UtilizationPercent)
	}

	for _, md := range report.Members[0].Days {
		if md.UtilizationPercent < 0 || md.UtilizationPercent > 100 {
			t.Errorf("percent %v out of [0,100]", md.UtilizationPercent)
		}
	}
}

func TestAggregate_FullWeekTimeOffYields100(t *testing.T) {
	// one all-day time_off entry spanning Mon-Fri, capacity 8h/day
	days := weekDays(date(2024, 6, 3))
	off := timedEntry("off", "m1", at(2024, 6, 3, 0, 0), at(2024, 6, 7, 0, 0))
	off.AllDay = true
	off.EntryType = model.EntryTypeTimeOff

	report := Aggregate([]model.ScheduleEntry{off}, []model.TeamMember{member("m1", "Maja")}, days, 8)
	mu := report.Members[0]

	for i := 0; i < 5; i++ {
		md := mu.Days[i]
		if !approxEqual(md.Hours, 8) {
			t.Errorf("weekday %d hours = %v, want 8", i, md.Hours)
		}
		if !md.IsTimeOff {
			t.Errorf("weekday %d not flagged IsTimeOff", i)
		}
	}
	if !approxEqual(mu.Average, 100) {
		t.Errorf("member average = %v, want 100", mu.Average)
	}
}

func TestAggregate_WeekendFlaggedAndExcludedFromAverage(t *testing.T) {
	days := weekDays(date(2024, 6, 3))
	entries := []model.ScheduleEntry{
		// 8h every weekday, plus 8h on Saturday
		timedEntry("sat", "m1", at(2024, 6, 8, 8, 0), at(2024, 6, 8, 16, 0)),
	}
	for i := 0; i < 5; i++ {
		d := date(2024, 6, 3).AddDate(0, 0, i)
		entries = append(entries, timedEntry("wd", "m1",
			d.Add(8*time.Hour), d.Add(16*time.Hour)))
	}

	report := Aggregate(entries, []model.TeamMember{member("m1", "Maja")}, days, 8)
	mu := report.Members[0]

	sat := mu.Days[5]
	if !sat.IsWeekend {
		t.Error("Saturday not flagged IsWeekend")
	}
	if !approxEqual(sat.Hours, 8) {
		t.Errorf("Saturday hours = %v, want 8 (still computed)", sat.Hours)
	}
	// weekend hours must not lift the average above the weekday-only 100%
	if !approxEqual(mu.Average, 100) {
		t.Errorf("average = %v, want 100 with weekends excluded", mu.Average)
	}
}

func TestAggregate_CancelledAndExternalExcluded(t *testing.T) {
	days := weekDays(date(2024, 6, 3))

	cancelled := timedEntry("c", "m1", at(2024, 6, 3, 8, 0), at(2024, 6, 3, 12, 0))
	cancelled.Status = model.EntryStatusCancelled
	ext := timedEntry("x", "m1", at(2024, 6, 3, 13, 0), at(2024, 6, 3, 17, 0))
	ext.Source = model.EntrySourceExternal
	ext.EntryType = model.EntryTypeExternal

	report := Aggregate([]model.ScheduleEntry{cancelled, ext}, []model.TeamMember{member("m1", "Maja")}, days, 8)
	mon := report.Members[0].Days[0]

	if !approxEqual(mon.Hours, 0) {
		t.Errorf("Monday hours = %v, want 0 (cancelled and external contribute nothing)", mon.Hours)
	}
}

func TestAggregate_OutsideFocusDaysSkipped(t *testing.T) {
	// month window for June 2024 includes padding from May and July
	w := Compute(GranularityMonth, date(2024, 6, 15))
	entries := []model.ScheduleEntry{
		// entry on a padding day (Fri 2024-05-31)
		timedEntry("pad", "m1", at(2024, 5, 31, 8, 0), at(2024, 5, 31, 16, 0)),
	}

	report := Aggregate(entries, []model.TeamMember{member("m1", "Maja")}, w.Days, 8)
	mu := report.Members[0]

	if len(mu.Days) != 30 {
		t.Fatalf("aggregated %d days, want 30 focus days", len(mu.Days))
	}
	for _, md := range mu.Days {
		if md.Date.Month() != time.June {
			t.Errorf("padding date %v included in aggregation", md.Date)
		}
		if !approxEqual(md.Hours, 0) {
			t.Errorf("%v has %v hours from a padding-day entry", md.Date, md.Hours)
		}
	}
}

func TestAggregate_TeamAverageUnweighted(t *testing.T) {
	days := weekDays(date(2024, 6, 3))
	entries := []model.ScheduleEntry{}
	// m1 works 8h on all five weekdays, m2 works 4h on one day only
	for i := 0; i < 5; i++ {
		d := date(2024, 6, 3).AddDate(0, 0, i)
		entries = append(entries, timedEntry("a", "m1", d.Add(8*time.Hour), d.Add(16*time.Hour)))
	}
	entries = append(entries, timedEntry("b", "m2", at(2024, 6, 3, 8, 0), at(2024, 6, 3, 12, 0)))

	roster := []model.TeamMember{member("m1", "Maja"), member("m2", "Bo")}
	report := Aggregate(entries, roster, days, 8)

	// m1: 100%, m2: 4h / (5 days * 8h) = 10%; unweighted mean = 55%
	if !approxEqual(report.Members[0].Average, 100) {
		t.Errorf("m1 average = %v, want 100", report.Members[0].Average)
	}
	if !approxEqual(report.Members[1].Average, 10) {
		t.Errorf("m2 average = %v, want 10", report.Members[1].Average)
	}
	if !approxEqual(report.TeamAverage, 55) {
		t.Errorf("team average = %v, want unweighted 55", report.TeamAverage)
	}
}

func TestAggregate_EmptyRoster(t *testing.T) {
	report := Aggregate(nil, nil, weekDays(date(2024, 6, 3)), 8)
	if report.TeamAverage != 0 || len(report.Members) != 0 {
		t.Errorf("empty roster should yield empty report, got %+v", report)
	}
}
