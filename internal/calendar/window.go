// Package calendar holds the pure scheduling computations: date windowing,
// conflict detection, grid layout geometry and utilization aggregation.
// Every function here is a total, synchronous transformer with no shared
// state; the services layer owns all IO and mutation.
package calendar

import "time"

// Granularity selects the calendar view.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// Day is one renderable date cell. OutsideFocus marks month-grid padding
// dates belonging to adjacent months; they still carry real entries but are
// excluded from utilization math.
type Day struct {
	Date         time.Time `json:"date"`
	OutsideFocus bool      `json:"outside_focus"`
}

// Window is the resolved view window. Start and End bound the focus period
// (End exclusive); Days is the ordered render list, which for month windows
// extends past the focus bounds to align full Monday-start weeks.
type Window struct {
	Granularity Granularity `json:"granularity"`
	Anchor      time.Time   `json:"anchor"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	Days        []Day       `json:"days"`
}

// FetchBounds returns the half-open range covering every rendered day,
// padding included. This is the range to load entries for.
func (w Window) FetchBounds() (time.Time, time.Time) {
	if len(w.Days) == 0 {
		return w.Start, w.End
	}
	first := w.Days[0].Date
	last := w.Days[len(w.Days)-1].Date
	return first, last.AddDate(0, 0, 1)
}

// Compute resolves the window for a granularity and anchor date. It is total
// over valid dates; an unknown granularity falls back to day.
func Compute(g Granularity, anchor time.Time) Window {
	anchor = StartOfDay(anchor)

	switch g {
	case GranularityWeek:
		start := StartOfWeek(anchor)
		end := start.AddDate(0, 0, 7)
		days := make([]Day, 0, 7)
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			days = append(days, Day{Date: d})
		}
		return Window{Granularity: g, Anchor: anchor, Start: start, End: end, Days: days}

	case GranularityMonth:
		monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		monthEnd := monthStart.AddDate(0, 1, 0)
		// pad both ends to full Monday-start weeks
		gridStart := StartOfWeek(monthStart)
		gridEnd := StartOfWeek(monthEnd.AddDate(0, 0, -1)).AddDate(0, 0, 7)
		days := make([]Day, 0, 42)
		for d := gridStart; d.Before(gridEnd); d = d.AddDate(0, 0, 1) {
			days = append(days, Day{
				Date:         d,
				OutsideFocus: d.Before(monthStart) || !d.Before(monthEnd),
			})
		}
		return Window{Granularity: g, Anchor: anchor, Start: monthStart, End: monthEnd, Days: days}

	default:
		return Window{
			Granularity: GranularityDay,
			Anchor:      anchor,
			Start:       anchor,
			End:         anchor.AddDate(0, 0, 1),
			Days:        []Day{{Date: anchor}},
		}
	}
}

// Next shifts the anchor forward by one unit of the granularity.
func Next(g Granularity, anchor time.Time) time.Time {
	return shift(g, anchor, 1)
}

// Prev shifts the anchor backward by one unit of the granularity.
func Prev(g Granularity, anchor time.Time) time.Time {
	return shift(g, anchor, -1)
}

func shift(g Granularity, anchor time.Time, step int) time.Time {
	anchor = StartOfDay(anchor)
	switch g {
	case GranularityWeek:
		return anchor.AddDate(0, 0, 7*step)
	case GranularityMonth:
		return anchor.AddDate(0, step, 0)
	default:
		return anchor.AddDate(0, 0, step)
	}
}

// StartOfDay truncates a timestamp to midnight, preserving its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the ISO week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = StartOfDay(t)
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	return t.AddDate(0, 0, -(wd - 1))
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
