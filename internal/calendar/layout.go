package calendar

import (
	"sort"
	"time"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

// Fixed grid constants for the proportional day/week layout.
const (
	DefaultHourHeight     = 48.0 // pixels per hour
	DefaultMinBlockHeight = 16.0 // keeps short entries legible and clickable
)

// HourBounds is the visible hour range [Start, End) of the day/week grid.
type HourBounds struct {
	Start int
	End   int
}

// BlockGeometry is the pixel placement of a timed entry in the proportional
// day/week grid. ReadOnly marks external entries, which occupy grid space but
// render as non-interactive.
type BlockGeometry struct {
	EntryID  string  `json:"entry_id"`
	Top      float64 `json:"top"`
	Height   float64 `json:"height"`
	Clamped  bool    `json:"clamped"`
	ReadOnly bool    `json:"read_only"`
}

// TimedBlock computes the geometry of a timed entry within the visible hours
// of the given day. Returns false when the entry has no visible extent on
// that day (all-day, or entirely outside the hour bounds). The minimum height
// keeps very short entries legible and clickable.
func TimedBlock(e model.ScheduleEntry, day time.Time, bounds HourBounds, hourHeight, minHeight float64) (BlockGeometry, bool) {
	if e.AllDay {
		return BlockGeometry{}, false
	}

	dayStart := StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)
	if !Overlaps(e.StartAt, e.EndAt, dayStart, dayEnd) {
		return BlockGeometry{}, false
	}

	// minutes since midnight, clamped to this day first
	startMin := minutesIntoDay(e.StartAt, dayStart)
	endMin := minutesIntoDay(e.EndAt, dayStart)

	visStart := bounds.Start * 60
	visEnd := bounds.End * 60

	clamped := false
	if startMin < visStart {
		startMin = visStart
		clamped = true
	}
	if endMin > visEnd {
		endMin = visEnd
		clamped = true
	}
	if endMin <= visStart || startMin >= visEnd {
		return BlockGeometry{}, false
	}

	top := float64(startMin-visStart) / 60.0 * hourHeight
	height := float64(endMin-startMin) / 60.0 * hourHeight
	if height < minHeight {
		height = minHeight
	}

	return BlockGeometry{
		EntryID:  e.EntryID,
		Top:      top,
		Height:   height,
		Clamped:  clamped,
		ReadOnly: e.Source == model.EntrySourceExternal,
	}, true
}

func minutesIntoDay(t, dayStart time.Time) int {
	if t.Before(dayStart) {
		return 0
	}
	if !t.Before(dayStart.AddDate(0, 0, 1)) {
		return 24 * 60
	}
	return t.Hour()*60 + t.Minute()
}

// AllDayChip is one chip in the all-day lane above the hourly grid.
type AllDayChip struct {
	EntryID  string `json:"entry_id"`
	Title    string `json:"title"`
	Color    string `json:"color"`
	ReadOnly bool   `json:"read_only"`
}

// AllDayLane lists the all-day chips for one day column, one per all-day
// entry occupying the date, ordered by title.
func AllDayLane(entries []model.ScheduleEntry, day time.Time) []AllDayChip {
	dayStart := StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var chips []AllDayChip
	for _, e := range entries {
		if !e.AllDay {
			continue
		}
		start, end := e.EffectiveSpan()
		if !Overlaps(start, end, dayStart, dayEnd) {
			continue
		}
		chips = append(chips, AllDayChip{
			EntryID:  e.EntryID,
			Title:    e.Title,
			Color:    e.DisplayColor(),
			ReadOnly: e.Source == model.EntrySourceExternal,
		})
	}
	sort.Slice(chips, func(i, j int) bool { return chips[i].Title < chips[j].Title })
	return chips
}

// MonthCell is the overflow-aware listing for one month-grid day: the first
// maxVisible entries plus a "+K more" count. Clicking the cell drills down to
// the day view; there is no inline expansion.
type MonthCell struct {
	Visible  []model.ScheduleEntry `json:"visible"`
	Overflow int                   `json:"overflow"`
}

// MonthCellFor lists the entries occupying a day, all-day entries first, then
// timed entries by start time with title as tiebreaker, truncated to
// maxVisible. External entries take up listing slots like local ones.
func MonthCellFor(entries []model.ScheduleEntry, day time.Time, maxVisible int) MonthCell {
	dayStart := StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var occupying []model.ScheduleEntry
	for _, e := range entries {
		start, end := e.EffectiveSpan()
		if Overlaps(start, end, dayStart, dayEnd) {
			occupying = append(occupying, e)
		}
	}

	sort.SliceStable(occupying, func(i, j int) bool {
		a, b := occupying[i], occupying[j]
		if a.AllDay != b.AllDay {
			return a.AllDay
		}
		if !a.AllDay && !a.StartAt.Equal(b.StartAt) {
			return a.StartAt.Before(b.StartAt)
		}
		return a.Title < b.Title
	})

	if maxVisible < 0 {
		maxVisible = 0
	}
	if len(occupying) <= maxVisible {
		return MonthCell{Visible: occupying}
	}
	return MonthCell{
		Visible:  occupying[:maxVisible],
		Overflow: len(occupying) - maxVisible,
	}
}
