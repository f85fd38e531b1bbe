package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

func newScheduleFixture() (*testRepos, ScheduleService) {
	tr := newTestRepos()
	logger := zap.NewNop()
	settings := NewSettingsService(tr.repo, testScheduleDefaults(), logger)
	return tr, NewScheduleService(tr.repo, settings, logger)
}

func TestCreateEntry(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))

	resp, err := svc.CreateEntry(context.Background(), &dto.CreateEntryRequest{
		MemberID: "m1",
		Title:    "Boiler install",
		StartAt:  "2024-06-03T09:00",
		EndAt:    "2024-06-03T12:00",
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if resp.Entry.ID == "" {
		t.Error("expected assigned entry id")
	}
	if resp.Entry.Title != "Boiler install" {
		t.Errorf("title = %q", resp.Entry.Title)
	}
	if resp.Entry.EntryType != model.EntryTypeProject {
		t.Errorf("default entry type = %q, want project", resp.Entry.EntryType)
	}
	if len(resp.Conflicts) != 0 {
		t.Errorf("unexpected conflicts: %d", len(resp.Conflicts))
	}
}

func TestCreateEntryReportsConflictsButSaves(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))

	if _, err := svc.CreateEntry(context.Background(), &dto.CreateEntryRequest{
		MemberID: "m1",
		Title:    "Morning job",
		StartAt:  "2024-06-03T09:00",
		EndAt:    "2024-06-03T12:00",
	}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	resp, err := svc.CreateEntry(context.Background(), &dto.CreateEntryRequest{
		MemberID: "m1",
		Title:    "Overlapping job",
		StartAt:  "2024-06-03T11:00",
		EndAt:    "2024-06-03T13:00",
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if len(resp.Conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(resp.Conflicts))
	}
	if resp.Conflicts[0].Title != "Morning job" {
		t.Errorf("conflicting title = %q", resp.Conflicts[0].Title)
	}
	// the save went through despite the warning
	if _, err := svc.GetEntry(context.Background(), resp.Entry.ID); err != nil {
		t.Errorf("saved entry not found: %v", err)
	}
}

func TestCreateEntryProjectTitleAutofill(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))
	project := tr.projects.add(&model.Project{Name: "Hansen kitchen remodel"})

	resp, err := svc.CreateEntry(context.Background(), &dto.CreateEntryRequest{
		MemberID:  "m1",
		ProjectID: &project.ProjectID,
		StartAt:   "2024-06-03T09:00",
		EndAt:     "2024-06-03T12:00",
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if resp.Entry.Title != "Hansen kitchen remodel" {
		t.Errorf("title = %q, want project name", resp.Entry.Title)
	}
}

func TestCreateEntryValidation(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))
	inactive := schedulableMember("m2", "Bob")
	inactive.IsActive = false
	tr.members.add(inactive)

	tests := []struct {
		name  string
		req   dto.CreateEntryRequest
		field string
	}{
		{
			name:  "end before start",
			req:   dto.CreateEntryRequest{MemberID: "m1", Title: "t", StartAt: "2024-06-03T12:00", EndAt: "2024-06-03T09:00"},
			field: "end_at",
		},
		{
			name:  "bad start",
			req:   dto.CreateEntryRequest{MemberID: "m1", Title: "t", StartAt: "not-a-time", EndAt: "2024-06-03T09:00"},
			field: "start_at",
		},
		{
			name:  "missing title",
			req:   dto.CreateEntryRequest{MemberID: "m1", StartAt: "2024-06-03T09:00", EndAt: "2024-06-03T10:00"},
			field: "title",
		},
		{
			name:  "inactive member",
			req:   dto.CreateEntryRequest{MemberID: "m2", Title: "t", StartAt: "2024-06-03T09:00", EndAt: "2024-06-03T10:00"},
			field: "member_id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEntry(context.Background(), &tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestCreateEntryUnknownMember(t *testing.T) {
	_, svc := newScheduleFixture()
	_, err := svc.CreateEntry(context.Background(), &dto.CreateEntryRequest{
		MemberID: "ghost", Title: "t", StartAt: "2024-06-03T09:00", EndAt: "2024-06-03T10:00",
	})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestUpdateEntry(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))

	created, err := svc.CreateEntry(context.Background(), &dto.CreateEntryRequest{
		MemberID: "m1", Title: "Site visit", StartAt: "2024-06-03T09:00", EndAt: "2024-06-03T12:00",
	})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	newEnd := "2024-06-03T14:00"
	status := model.EntryStatusCompleted
	resp, err := svc.UpdateEntry(context.Background(), created.Entry.ID, &dto.UpdateEntryRequest{
		EndAt:  &newEnd,
		Status: &status,
	})
	if err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if resp.Entry.EndAt != newEnd {
		t.Errorf("end = %q, want %q", resp.Entry.EndAt, newEnd)
	}
	if resp.Entry.Status != model.EntryStatusCompleted {
		t.Errorf("status = %q", resp.Entry.Status)
	}
}

func TestUpdateEntryExcludesSelfFromConflicts(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))

	created, err := svc.CreateEntry(context.Background(), &dto.CreateEntryRequest{
		MemberID: "m1", Title: "Job", StartAt: "2024-06-03T09:00", EndAt: "2024-06-03T12:00",
	})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	newEnd := "2024-06-03T11:00"
	resp, err := svc.UpdateEntry(context.Background(), created.Entry.ID, &dto.UpdateEntryRequest{EndAt: &newEnd})
	if err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if len(resp.Conflicts) != 0 {
		t.Errorf("entry conflicts with itself: %d", len(resp.Conflicts))
	}
}

func TestExternalEntryIsImmutable(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))

	uid := "feed-uid-1"
	external := &model.ScheduleEntry{
		MemberID:   "m1",
		Title:      "Mirrored event",
		StartAt:    mustParseDateTime(t, "2024-06-03T09:00"),
		EndAt:      mustParseDateTime(t, "2024-06-03T10:00"),
		EntryType:  model.EntryTypeExternal,
		Status:     model.EntryStatusScheduled,
		Source:     model.EntrySourceExternal,
		ForeignUID: &uid,
	}
	if err := tr.entries.Create(context.Background(), external); err != nil {
		t.Fatalf("seed external entry: %v", err)
	}

	title := "renamed"
	if _, err := svc.UpdateEntry(context.Background(), external.EntryID, &dto.UpdateEntryRequest{Title: &title}); !errors.Is(err, ErrEntryImmutable) {
		t.Errorf("update err = %v, want ErrEntryImmutable", err)
	}
	if err := svc.DeleteEntry(context.Background(), external.EntryID); !errors.Is(err, ErrEntryImmutable) {
		t.Errorf("delete err = %v, want ErrEntryImmutable", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))

	created, err := svc.CreateEntry(context.Background(), &dto.CreateEntryRequest{
		MemberID: "m1", Title: "Job", StartAt: "2024-06-03T09:00", EndAt: "2024-06-03T12:00",
	})
	if err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	if err := svc.DeleteEntry(context.Background(), created.Entry.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if _, err := svc.GetEntry(context.Background(), created.Entry.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
	if err := svc.DeleteEntry(context.Background(), "missing"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestListEntries(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))
	tr.members.add(schedulableMember("m2", "Bob"))

	seed := []dto.CreateEntryRequest{
		{MemberID: "m1", Title: "In window", StartAt: "2024-06-03T09:00", EndAt: "2024-06-03T12:00"},
		{MemberID: "m2", Title: "Also in window", StartAt: "2024-06-05T13:00", EndAt: "2024-06-05T15:00"},
		{MemberID: "m1", Title: "Next week", StartAt: "2024-06-10T09:00", EndAt: "2024-06-10T12:00"},
	}
	for i := range seed {
		if _, err := svc.CreateEntry(context.Background(), &seed[i]); err != nil {
			t.Fatalf("seed entry %d: %v", i, err)
		}
	}

	entries, err := svc.ListEntries(context.Background(), &dto.ListEntriesRequest{
		Granularity: "week",
		Anchor:      "2024-06-03",
	})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	entries, err = svc.ListEntries(context.Background(), &dto.ListEntriesRequest{
		Granularity: "week",
		Anchor:      "2024-06-03",
		MemberIDs:   []string{"m2"},
	})
	if err != nil {
		t.Fatalf("ListEntries filtered: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Also in window" {
		t.Errorf("filtered entries = %+v, want only Bob's", entries)
	}
}

func TestCheckConflicts(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))

	if _, err := svc.CreateEntry(context.Background(), &dto.CreateEntryRequest{
		MemberID: "m1", Title: "Busy", StartAt: "2024-06-03T09:00", EndAt: "2024-06-03T12:00",
	}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	resp, err := svc.CheckConflicts(context.Background(), &dto.ConflictCheckRequest{
		MemberID:  "m1",
		Date:      "2024-06-03",
		StartTime: "11:00",
		EndTime:   "13:00",
	})
	if err != nil {
		t.Fatalf("CheckConflicts: %v", err)
	}
	if len(resp.Conflicts) != 1 {
		t.Errorf("conflicts = %d, want 1", len(resp.Conflicts))
	}

	// all-day candidates never conflict
	resp, err = svc.CheckConflicts(context.Background(), &dto.ConflictCheckRequest{
		MemberID: "m1",
		Date:     "2024-06-03",
		AllDay:   true,
	})
	if err != nil {
		t.Fatalf("CheckConflicts all-day: %v", err)
	}
	if len(resp.Conflicts) != 0 {
		t.Errorf("all-day conflicts = %d, want 0", len(resp.Conflicts))
	}
}

func TestGetWindowWeek(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))

	if _, err := svc.CreateEntry(context.Background(), &dto.CreateEntryRequest{
		MemberID: "m1", Title: "Job", StartAt: "2024-06-05T09:00", EndAt: "2024-06-05T12:00",
	}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	resp, err := svc.GetWindow(context.Background(), &dto.WindowRequest{
		Granularity: "week",
		Anchor:      "2024-06-05",
	})
	if err != nil {
		t.Fatalf("GetWindow: %v", err)
	}
	if resp.Start != "2024-06-03" || resp.End != "2024-06-09" {
		t.Errorf("week bounds = %s..%s", resp.Start, resp.End)
	}
	if len(resp.Columns) != 7 {
		t.Fatalf("columns = %d, want 7", len(resp.Columns))
	}
	if len(resp.Cells) != 0 {
		t.Errorf("week response has month cells")
	}

	wednesday := resp.Columns[2]
	if len(wednesday.Blocks) != 1 {
		t.Fatalf("wednesday blocks = %d, want 1", len(wednesday.Blocks))
	}
	// 09:00 with 06:00 visible start at 48 px/hour
	if wednesday.Blocks[0].Top != 144 {
		t.Errorf("block top = %v, want 144", wednesday.Blocks[0].Top)
	}
	if !resp.Columns[5].Weekend || !resp.Columns[6].Weekend {
		t.Error("saturday and sunday not flagged as weekend")
	}
}

func TestGetWindowMonth(t *testing.T) {
	tr, svc := newScheduleFixture()
	tr.members.add(schedulableMember("m1", "Alice"))

	resp, err := svc.GetWindow(context.Background(), &dto.WindowRequest{
		Granularity: "month",
		Anchor:      "2024-06-15",
	})
	if err != nil {
		t.Fatalf("GetWindow: %v", err)
	}
	if len(resp.Columns) != 0 {
		t.Errorf("month response has day columns")
	}
	if len(resp.Cells) == 0 || len(resp.Cells)%7 != 0 {
		t.Fatalf("cells = %d, want a positive multiple of 7", len(resp.Cells))
	}
	if !resp.Cells[0].OutsideFocus {
		t.Error("leading padding day not flagged")
	}
}

func TestGetWindowNav(t *testing.T) {
	_, svc := newScheduleFixture()

	next, err := svc.GetWindow(context.Background(), &dto.WindowRequest{
		Granularity: "week",
		Anchor:      "2024-06-05",
		Nav:         "next",
	})
	if err != nil {
		t.Fatalf("GetWindow next: %v", err)
	}
	if next.Start != "2024-06-10" || next.End != "2024-06-16" {
		t.Errorf("next week bounds = %s..%s", next.Start, next.End)
	}

	prev, err := svc.GetWindow(context.Background(), &dto.WindowRequest{
		Granularity: "month",
		Anchor:      "2024-06-15",
		Nav:         "prev",
	})
	if err != nil {
		t.Fatalf("GetWindow prev: %v", err)
	}
	if prev.Start != "2024-05-01" || prev.End != "2024-05-31" {
		t.Errorf("previous month bounds = %s..%s", prev.Start, prev.End)
	}

	if _, err := svc.GetWindow(context.Background(), &dto.WindowRequest{
		Granularity: "week",
		Nav:         "sideways",
	}); err == nil {
		t.Error("unknown nav accepted")
	}
}

func TestGetWindowRejectsBadInput(t *testing.T) {
	_, svc := newScheduleFixture()

	var verr *ValidationError
	if _, err := svc.GetWindow(context.Background(), &dto.WindowRequest{Granularity: "fortnight"}); !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError", err)
	}
	if _, err := svc.GetWindow(context.Background(), &dto.WindowRequest{Anchor: "June 5th"}); !errors.As(err, &verr) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func mustParseDateTime(t *testing.T, s string) (ts time.Time) {
	t.Helper()
	ts, err := dto.ParseDateTime(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}
