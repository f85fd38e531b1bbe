package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/calendar"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/repository"
	pkgerrors "github.com/Ahogberg/handymate-dashboard-sub000/pkg/errors"
)

// ── schedule module business errors ──

var (
	ErrEntryNotFound   = errors.New("schedule entry not found")
	ErrMemberNotFound  = errors.New("team member not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrEntryImmutable  = pkgerrors.ErrImmutableEntry
)

// ValidationError identifies the offending field before anything is sent to
// the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// ScheduleService is the schedule controller: it owns the window, entry set
// and all entry mutations. The calendar package does the pure computation;
// this service does the IO around it. All mutations follow confirm-then-
// refetch: the store is asked first, then the affected state is re-read.
type ScheduleService interface {
	// GetWindow resolves a view window with entries and layout geometry.
	GetWindow(ctx context.Context, req *dto.WindowRequest) (*dto.WindowResponse, error)
	// ListEntries returns the flat entry list for a window, without layout.
	ListEntries(ctx context.Context, req *dto.ListEntriesRequest) ([]dto.EntryResponse, error)
	// GetEntry fetches one entry.
	GetEntry(ctx context.Context, id string) (*dto.EntryResponse, error)
	// CheckConflicts is the advisory pre-submit conflict check.
	CheckConflicts(ctx context.Context, req *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error)
	// CreateEntry places a new local entry; the response carries any
	// overlaps as a warning, not a failure.
	CreateEntry(ctx context.Context, req *dto.CreateEntryRequest) (*dto.EntryMutationResponse, error)
	// UpdateEntry mutates a local entry. External entries are refused.
	UpdateEntry(ctx context.Context, id string, req *dto.UpdateEntryRequest) (*dto.EntryMutationResponse, error)
	// DeleteEntry removes a local entry. External entries are refused.
	DeleteEntry(ctx context.Context, id string) error
}

type scheduleService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, settings: settings, logger: logger}
}

// ────────────────────── GetWindow ──────────────────────

func (s *scheduleService) GetWindow(ctx context.Context, req *dto.WindowRequest) (*dto.WindowResponse, error) {
	window, err := resolveWindow(req.Granularity, req.Anchor, req.Nav)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	fetchStart, fetchEnd := window.FetchBounds()
	entries, err := s.repo.Entry.ListWindow(ctx, fetchStart, fetchEnd, req.MemberIDs)
	if err != nil {
		s.logger.Error("list window entries failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.WindowResponse{
		Granularity: string(window.Granularity),
		Anchor:      window.Anchor.Format(dto.DateLayout),
		Start:       window.Start.Format(dto.DateLayout),
		End:         window.End.AddDate(0, 0, -1).Format(dto.DateLayout), // last focus day
		HourHeight:  calendar.DefaultHourHeight,
		StartHour:   settings.VisibleStartHour,
		EndHour:     settings.VisibleEndHour,
		Entries:     entriesToResponses(entries),
	}

	switch window.Granularity {
	case calendar.GranularityMonth:
		for _, day := range window.Days {
			cell := calendar.MonthCellFor(entries, day.Date, settings.MonthCellMaxEntries)
			resp.Cells = append(resp.Cells, dto.MonthDayCell{
				Date:         day.Date.Format(dto.DateLayout),
				OutsideFocus: day.OutsideFocus,
				Entries:      entriesToResponses(cell.Visible),
				Overflow:     cell.Overflow,
			})
		}
	default:
		bounds := calendar.HourBounds{Start: settings.VisibleStartHour, End: settings.VisibleEndHour}
		for _, day := range window.Days {
			col := dto.DayColumn{
				Date:    day.Date.Format(dto.DateLayout),
				AllDay:  calendar.AllDayLane(entries, day.Date),
				Weekend: calendar.IsWeekend(day.Date),
			}
			for _, e := range entries {
				if geo, ok := calendar.TimedBlock(e, day.Date, bounds,
					calendar.DefaultHourHeight, calendar.DefaultMinBlockHeight); ok {
					col.Blocks = append(col.Blocks, geo)
				}
			}
			resp.Columns = append(resp.Columns, col)
		}
	}

	return resp, nil
}

// ────────────────────── ListEntries ──────────────────────

func (s *scheduleService) ListEntries(ctx context.Context, req *dto.ListEntriesRequest) ([]dto.EntryResponse, error) {
	window, err := resolveWindow(req.Granularity, req.Anchor, "")
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Entry.ListWindow(ctx, window.Start, window.End, req.MemberIDs)
	if err != nil {
		s.logger.Error("list entries failed", zap.Error(err))
		return nil, err
	}
	return entriesToResponses(entries), nil
}

// ────────────────────── GetEntry ──────────────────────

func (s *scheduleService) GetEntry(ctx context.Context, id string) (*dto.EntryResponse, error) {
	entry, err := s.repo.Entry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("get entry failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := entryToResponse(*entry)
	return &resp, nil
}

// ────────────────────── CheckConflicts ──────────────────────

func (s *scheduleService) CheckConflicts(ctx context.Context, req *dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Message: err.Error()}
	}

	cand := calendar.Candidate{
		MemberID:       req.MemberID,
		AllDay:         req.AllDay,
		ExcludeEntryID: req.ExcludeEntryID,
	}
	if !req.AllDay {
		if req.StartTime == "" || req.EndTime == "" {
			return nil, &ValidationError{Field: "start_time", Message: "start and end times are required for timed entries"}
		}
		if cand.Start, err = dto.ParseClockOnDate(date, req.StartTime); err != nil {
			return nil, &ValidationError{Field: "start_time", Message: err.Error()}
		}
		if cand.End, err = dto.ParseClockOnDate(date, req.EndTime); err != nil {
			return nil, &ValidationError{Field: "end_time", Message: err.Error()}
		}
	}

	conflicts, err := s.detectConflicts(ctx, cand)
	if err != nil {
		return nil, err
	}
	return &dto.ConflictCheckResponse{Conflicts: entriesToResponses(conflicts)}, nil
}

// detectConflicts loads the member's entries around the candidate and runs
// the pure detector over them.
func (s *scheduleService) detectConflicts(ctx context.Context, cand calendar.Candidate) ([]model.ScheduleEntry, error) {
	if cand.AllDay {
		return nil, nil
	}
	dayStart := calendar.StartOfDay(cand.Start)
	dayEnd := calendar.StartOfDay(cand.End).AddDate(0, 0, 1)
	entries, err := s.repo.Entry.ListWindow(ctx, dayStart, dayEnd, []string{cand.MemberID})
	if err != nil {
		s.logger.Error("list entries for conflict check failed", zap.Error(err))
		return nil, err
	}
	return calendar.DetectConflicts(entries, cand), nil
}

// ────────────────────── CreateEntry ──────────────────────

func (s *scheduleService) CreateEntry(ctx context.Context, req *dto.CreateEntryRequest) (*dto.EntryMutationResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !member.IsSchedulable() {
		return nil, &ValidationError{Field: "member_id", Message: "member is not active on the schedule"}
	}

	startAt, err := dto.ParseDateTime(req.StartAt)
	if err != nil {
		return nil, &ValidationError{Field: "start_at", Message: err.Error()}
	}
	endAt, err := dto.ParseDateTime(req.EndAt)
	if err != nil {
		return nil, &ValidationError{Field: "end_at", Message: err.Error()}
	}
	if endAt.Before(startAt) {
		return nil, &ValidationError{Field: "end_at", Message: "end must not precede start"}
	}

	title := req.Title
	if title == "" && req.ProjectID != nil {
		project, err := s.repo.Project.GetByID(ctx, *req.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, err
		}
		title = project.Name
	}
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}

	entryType := req.EntryType
	if entryType == "" {
		entryType = model.EntryTypeProject
	}

	// advisory only: the save proceeds, the caller decides what to show
	conflicts, err := s.detectConflicts(ctx, calendar.Candidate{
		MemberID: req.MemberID,
		Start:    startAt,
		End:      endAt,
		AllDay:   req.AllDay,
	})
	if err != nil {
		return nil, err
	}

	entry := &model.ScheduleEntry{
		MemberID:    req.MemberID,
		ProjectID:   req.ProjectID,
		Title:       title,
		Description: req.Description,
		StartAt:     startAt,
		EndAt:       endAt,
		AllDay:      req.AllDay,
		EntryType:   entryType,
		Status:      model.EntryStatusScheduled,
		Color:       req.Color,
		Source:      model.EntrySourceLocal,
	}
	if err := s.repo.Entry.Create(ctx, entry); err != nil {
		s.logger.Error("create entry failed", zap.Error(err))
		return nil, err
	}

	// confirm-then-refetch
	created, err := s.repo.Entry.GetByID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}

	resp := entryToResponse(*created)
	return &dto.EntryMutationResponse{
		Entry:     &resp,
		Conflicts: entriesToResponses(conflicts),
	}, nil
}

// ────────────────────── UpdateEntry ──────────────────────

func (s *scheduleService) UpdateEntry(ctx context.Context, id string, req *dto.UpdateEntryRequest) (*dto.EntryMutationResponse, error) {
	entry, err := s.repo.Entry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if !entry.IsMutable() {
		return nil, ErrEntryImmutable
	}

	if req.MemberID != nil {
		member, err := s.repo.Member.GetByID(ctx, *req.MemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
		if !member.IsSchedulable() {
			return nil, &ValidationError{Field: "member_id", Message: "member is not active on the schedule"}
		}
		entry.MemberID = *req.MemberID
	}
	if req.ProjectID != nil {
		if _, err := s.repo.Project.GetByID(ctx, *req.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, err
		}
		entry.ProjectID = req.ProjectID
	}
	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Description != nil {
		entry.Description = req.Description
	}
	if req.StartAt != nil {
		t, err := dto.ParseDateTime(*req.StartAt)
		if err != nil {
			return nil, &ValidationError{Field: "start_at", Message: err.Error()}
		}
		entry.StartAt = t
	}
	if req.EndAt != nil {
		t, err := dto.ParseDateTime(*req.EndAt)
		if err != nil {
			return nil, &ValidationError{Field: "end_at", Message: err.Error()}
		}
		entry.EndAt = t
	}
	if entry.EndAt.Before(entry.StartAt) {
		return nil, &ValidationError{Field: "end_at", Message: "end must not precede start"}
	}
	if req.AllDay != nil {
		entry.AllDay = *req.AllDay
	}
	if req.EntryType != nil {
		entry.EntryType = *req.EntryType
	}
	if req.Status != nil {
		entry.Status = *req.Status
	}
	if req.Color != nil {
		entry.Color = req.Color
	}

	conflicts, err := s.detectConflicts(ctx, calendar.Candidate{
		MemberID:       entry.MemberID,
		Start:          entry.StartAt,
		End:            entry.EndAt,
		AllDay:         entry.AllDay,
		ExcludeEntryID: entry.EntryID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Entry.Update(ctx, entry); err != nil {
		s.logger.Error("update entry failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Entry.GetByID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}

	resp := entryToResponse(*updated)
	return &dto.EntryMutationResponse{
		Entry:     &resp,
		Conflicts: entriesToResponses(conflicts),
	}, nil
}

// ────────────────────── DeleteEntry ──────────────────────

func (s *scheduleService) DeleteEntry(ctx context.Context, id string) error {
	entry, err := s.repo.Entry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	if !entry.IsMutable() {
		return ErrEntryImmutable
	}

	if err := s.repo.Entry.Delete(ctx, id); err != nil {
		s.logger.Error("delete entry failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

// resolveWindow parses granularity and anchor, defaulting to the current
// week, then applies the nav shift. An unparseable anchor is a validation
// error.
func resolveWindow(granularity, anchor, nav string) (calendar.Window, error) {
	g := calendar.Granularity(granularity)
	if granularity == "" {
		g = calendar.GranularityWeek
	}
	if !g.Valid() {
		return calendar.Window{}, &ValidationError{Field: "granularity", Message: "unknown granularity"}
	}

	anchorDate := time.Now()
	if anchor != "" {
		parsed, err := dto.ParseDate(anchor)
		if err != nil {
			return calendar.Window{}, &ValidationError{Field: "anchor", Message: err.Error()}
		}
		anchorDate = parsed
	}

	switch nav {
	case "":
	case "next":
		anchorDate = calendar.Next(g, anchorDate)
	case "prev":
		anchorDate = calendar.Prev(g, anchorDate)
	case "today":
		anchorDate = time.Now()
	default:
		return calendar.Window{}, &ValidationError{Field: "nav", Message: "unknown navigation"}
	}

	return calendar.Compute(g, anchorDate), nil
}

func entryToResponse(e model.ScheduleEntry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:          e.EntryID,
		MemberID:    e.MemberID,
		ProjectID:   e.ProjectID,
		Title:       e.Title,
		Description: e.Description,
		StartAt:     e.StartAt.Format(dto.DateTimeLayout),
		EndAt:       e.EndAt.Format(dto.DateTimeLayout),
		AllDay:      e.AllDay,
		EntryType:   e.EntryType,
		Status:      e.Status,
		Color:       e.DisplayColor(),
		Source:      e.Source,
		ReadOnly:    !e.IsMutable(),
	}
}

func entriesToResponses(entries []model.ScheduleEntry) []dto.EntryResponse {
	resps := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		resps = append(resps, entryToResponse(e))
	}
	return resps
}
