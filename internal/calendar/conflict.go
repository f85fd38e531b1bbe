package calendar

import (
	"time"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

// Candidate is a proposed placement to check against the current entry set.
// ExcludeEntryID carries the entry's own id while editing so it is never
// reported against itself.
type Candidate struct {
	MemberID       string
	Start          time.Time
	End            time.Time
	AllDay         bool
	ExcludeEntryID string
}

// Overlaps is the half-open interval test: touching boundaries do not
// overlap. Symmetric in its two ranges.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DetectConflicts returns every entry in the set that overlaps the candidate.
// All-day candidates never conflict; multiple absences and placeholders may
// coexist on a day. Entries qualify only when they belong to the same member,
// are timed, are not mirrored from an external calendar, and are not the
// excluded entry. An empty result means no conflict.
func DetectConflicts(entries []model.ScheduleEntry, cand Candidate) []model.ScheduleEntry {
	if cand.AllDay {
		return nil
	}

	var conflicts []model.ScheduleEntry
	for _, e := range entries {
		if e.MemberID != cand.MemberID || e.AllDay {
			continue
		}
		if e.Source == model.EntrySourceExternal {
			continue
		}
		if cand.ExcludeEntryID != "" && e.EntryID == cand.ExcludeEntryID {
			continue
		}
		if Overlaps(e.StartAt, e.EndAt, cand.Start, cand.End) {
			conflicts = append(conflicts, e)
		}
	}
	return conflicts
}
