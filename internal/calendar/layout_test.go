package calendar

import (
	"testing"
	"time"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

var testBounds = HourBounds{Start: 6, End: 20}

const (
	testHourHeight = 48.0
	testMinHeight  = 16.0
)

func TestTimedBlock_ProportionalPlacement(t *testing.T) {
	day := date(2024, 6, 3)
	e := timedEntry("e1", "m1", at(2024, 6, 3, 9, 0), at(2024, 6, 3, 12, 0))

	geo, ok := TimedBlock(e, day, testBounds, testHourHeight, testMinHeight)
	if !ok {
		t.Fatal("expected a visible block")
	}
	// 09:00 is 3 hours after the 06:00 grid start
	if geo.Top != 3*testHourHeight {
		t.Errorf("Top = %v, want %v", geo.Top, 3*testHourHeight)
	}
	if geo.Height != 3*testHourHeight {
		t.Errorf("Height = %v, want %v", geo.Height, 3*testHourHeight)
	}
	if geo.Clamped {
		t.Error("block inside visible hours should not be clamped")
	}
}

func TestTimedBlock_ClampsToVisibleHours(t *testing.T) {
	day := date(2024, 6, 3)
	e := timedEntry("e1", "m1", at(2024, 6, 3, 4, 0), at(2024, 6, 3, 22, 0))

	geo, ok := TimedBlock(e, day, testBounds, testHourHeight, testMinHeight)
	if !ok {
		t.Fatal("expected a visible block")
	}
	if geo.Top != 0 {
		t.Errorf("Top = %v, want 0 after clamping", geo.Top)
	}
	if geo.Height != 14*testHourHeight {
		t.Errorf("Height = %v, want full grid height %v", geo.Height, 14*testHourHeight)
	}
	if !geo.Clamped {
		t.Error("expected Clamped = true")
	}
}

func TestTimedBlock_MinimumHeightForShortEntries(t *testing.T) {
	day := date(2024, 6, 3)
	e := timedEntry("e1", "m1", at(2024, 6, 3, 9, 0), at(2024, 6, 3, 9, 5))

	geo, ok := TimedBlock(e, day, testBounds, testHourHeight, testMinHeight)
	if !ok {
		t.Fatal("expected a visible block")
	}
	if geo.Height != testMinHeight {
		t.Errorf("Height = %v, want minimum %v", geo.Height, testMinHeight)
	}
}

func TestTimedBlock_OutsideVisibleHoursHidden(t *testing.T) {
	day := date(2024, 6, 3)
	e := timedEntry("e1", "m1", at(2024, 6, 3, 21, 0), at(2024, 6, 3, 23, 0))

	if _, ok := TimedBlock(e, day, testBounds, testHourHeight, testMinHeight); ok {
		t.Error("entry entirely after visible hours should be hidden")
	}
}

func TestTimedBlock_ExternalMarkedReadOnly(t *testing.T) {
	day := date(2024, 6, 3)
	e := timedEntry("e1", "m1", at(2024, 6, 3, 9, 0), at(2024, 6, 3, 10, 0))
	e.Source = model.EntrySourceExternal

	geo, ok := TimedBlock(e, day, testBounds, testHourHeight, testMinHeight)
	if !ok {
		t.Fatal("external entry must still occupy grid space")
	}
	if !geo.ReadOnly {
		t.Error("external entry not marked read-only")
	}
}

func TestAllDayLane_OneChipPerEntry(t *testing.T) {
	day := date(2024, 6, 3)
	a := timedEntry("e1", "m1", at(2024, 6, 3, 0, 0), at(2024, 6, 3, 0, 0))
	a.AllDay = true
	a.Title = "Vacation"
	b := timedEntry("e2", "m1", at(2024, 6, 3, 0, 0), at(2024, 6, 3, 0, 0))
	b.AllDay = true
	b.Title = "Holiday"
	timed := timedEntry("e3", "m1", at(2024, 6, 3, 9, 0), at(2024, 6, 3, 10, 0))

	chips := AllDayLane([]model.ScheduleEntry{a, b, timed}, day)
	if len(chips) != 2 {
		t.Fatalf("expected 2 chips, got %d", len(chips))
	}
	// ordered by title
	if chips[0].Title != "Holiday" || chips[1].Title != "Vacation" {
		t.Errorf("chips out of order: %v", chips)
	}
}

func TestAllDayLane_IgnoresStoredClockValues(t *testing.T) {
	// an all-day entry stored with a mid-day clock still occupies its full date
	day := date(2024, 6, 3)
	e := timedEntry("e1", "m1", at(2024, 6, 3, 15, 30), at(2024, 6, 3, 15, 30))
	e.AllDay = true

	chips := AllDayLane([]model.ScheduleEntry{e}, day)
	if len(chips) != 1 {
		t.Fatalf("expected 1 chip, got %d", len(chips))
	}
}

func TestMonthCellFor_SortAndOverflow(t *testing.T) {
	day := date(2024, 6, 3)

	allDay := timedEntry("a", "m1", at(2024, 6, 3, 0, 0), at(2024, 6, 3, 0, 0))
	allDay.AllDay = true
	allDay.Title = "Zed all day"

	early := timedEntry("b", "m1", at(2024, 6, 3, 8, 0), at(2024, 6, 3, 9, 0))
	early.Title = "Early"
	tieA := timedEntry("c", "m1", at(2024, 6, 3, 10, 0), at(2024, 6, 3, 11, 0))
	tieA.Title = "Alpha"
	tieB := timedEntry("d", "m1", at(2024, 6, 3, 10, 0), at(2024, 6, 3, 11, 0))
	tieB.Title = "Beta"

	cell := MonthCellFor([]model.ScheduleEntry{tieB, early, allDay, tieA}, day, 3)

	if len(cell.Visible) != 3 {
		t.Fatalf("expected 3 visible entries, got %d", len(cell.Visible))
	}
	if cell.Overflow != 1 {
		t.Errorf("Overflow = %d, want 1", cell.Overflow)
	}
	// all-day first, then by start time, title breaks the tie
	if cell.Visible[0].EntryID != "a" || cell.Visible[1].EntryID != "b" || cell.Visible[2].EntryID != "c" {
		t.Errorf("unexpected order: %s %s %s",
			cell.Visible[0].EntryID, cell.Visible[1].EntryID, cell.Visible[2].EntryID)
	}
}

func TestMonthCellFor_NoOverflowWhenUnderLimit(t *testing.T) {
	day := date(2024, 6, 3)
	e := timedEntry("e1", "m1", at(2024, 6, 3, 9, 0), at(2024, 6, 3, 10, 0))

	cell := MonthCellFor([]model.ScheduleEntry{e}, day, 3)
	if cell.Overflow != 0 {
		t.Errorf("Overflow = %d, want 0", cell.Overflow)
	}
	if len(cell.Visible) != 1 {
		t.Errorf("Visible = %d, want 1", len(cell.Visible))
	}
}

func TestMonthCellFor_OtherDaysExcluded(t *testing.T) {
	day := date(2024, 6, 3)
	e := timedEntry("e1", "m1", at(2024, 6, 4, 9, 0), at(2024, 6, 4, 10, 0))

	cell := MonthCellFor([]model.ScheduleEntry{e}, day, 3)
	if len(cell.Visible) != 0 {
		t.Errorf("entry from another day listed: %v", cell.Visible)
	}
}

func TestMonthCellFor_MultiDayTimedEntrySpansCells(t *testing.T) {
	e := timedEntry("e1", "m1", at(2024, 6, 3, 22, 0), at(2024, 6, 4, 2, 0))

	for _, d := range []time.Time{date(2024, 6, 3), date(2024, 6, 4)} {
		cell := MonthCellFor([]model.ScheduleEntry{e}, d, 3)
		if len(cell.Visible) != 1 {
			t.Errorf("overnight entry missing from cell %v", d)
		}
	}
}
