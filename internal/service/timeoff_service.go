package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/repository"
	pkgerrors "github.com/Ahogberg/handymate-dashboard-sub000/pkg/errors"
)

// ── time-off module business errors ──

var (
	ErrRequestNotFound   = errors.New("time-off request not found")
	ErrRequestNotPending = pkgerrors.ErrInvalidStateTransition
)

// TimeOffService runs the leave request state machine. Requests start
// pending; a single decision moves them to approved or rejected and both
// states are terminal. Approval materializes an all-day time_off entry
// spanning the requested dates.
type TimeOffService interface {
	Submit(ctx context.Context, memberID string, req *dto.SubmitTimeOffRequest) (*dto.TimeOffResponse, error)
	Decide(ctx context.Context, id, deciderID string, req *dto.DecideTimeOffRequest) (*dto.TimeOffResponse, error)
	List(ctx context.Context, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, error)
}

type timeOffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeOffService creates a TimeOffService.
func NewTimeOffService(repo *repository.Repository, logger *zap.Logger) TimeOffService {
	return &timeOffService{repo: repo, logger: logger}
}

func (s *timeOffService) Submit(ctx context.Context, memberID string, req *dto.SubmitTimeOffRequest) (*dto.TimeOffResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if !member.IsSchedulable() {
		return nil, &ValidationError{Field: "member_id", Message: "member is not active on the schedule"}
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, &ValidationError{Field: "start_date", Message: err.Error()}
	}
	endDate, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return nil, &ValidationError{Field: "end_date", Message: err.Error()}
	}
	if endDate.Before(startDate) {
		return nil, &ValidationError{Field: "end_date", Message: "end date must not precede start date"}
	}

	category := req.Category
	if category == "" {
		category = model.TimeOffVacation
	}

	request := &model.TimeOffRequest{
		MemberID:  memberID,
		StartDate: startDate,
		EndDate:   endDate,
		Category:  category,
		Note:      req.Note,
		Status:    model.TimeOffPending,
	}
	if err := s.repo.TimeOff.Create(ctx, request); err != nil {
		s.logger.Error("create time-off request failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.TimeOff.GetByID(ctx, request.RequestID)
	if err != nil {
		return nil, err
	}
	return timeOffToResponse(created), nil
}

func (s *timeOffService) Decide(ctx context.Context, id, deciderID string, req *dto.DecideTimeOffRequest) (*dto.TimeOffResponse, error) {
	request, err := s.repo.TimeOff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if request.Status != model.TimeOffPending {
		return nil, ErrRequestNotPending
	}

	now := time.Now()
	request.DecidedBy = &deciderID
	request.DecidedAt = &now

	var materialized *model.ScheduleEntry
	switch req.Decision {
	case "approve":
		entry, err := s.materializeEntry(ctx, request)
		if err != nil {
			return nil, err
		}
		materialized = entry
		request.Status = model.TimeOffApproved
		request.EntryID = &entry.EntryID
	case "reject":
		request.Status = model.TimeOffRejected
	default:
		return nil, &ValidationError{Field: "decision", Message: "unknown decision"}
	}

	if err := s.repo.TimeOff.Update(ctx, request); err != nil {
		s.logger.Error("update time-off request failed", zap.String("id", id), zap.Error(err))
		// the request is still pending in the store; the materialized
		// entry must not survive, or a retried approve would create a
		// second one
		if materialized != nil {
			if delErr := s.repo.Entry.Delete(ctx, materialized.EntryID); delErr != nil {
				s.logger.Error("remove entry after failed approval failed",
					zap.String("entry_id", materialized.EntryID), zap.Error(delErr))
			}
		}
		return nil, err
	}

	updated, err := s.repo.TimeOff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return timeOffToResponse(updated), nil
}

// materializeEntry writes the approved absence onto the schedule as a single
// all-day time_off entry spanning the requested dates.
func (s *timeOffService) materializeEntry(ctx context.Context, request *model.TimeOffRequest) (*model.ScheduleEntry, error) {
	title := "Time off"
	if request.Category != "" {
		title = "Time off (" + request.Category + ")"
	}
	entry := &model.ScheduleEntry{
		MemberID:  request.MemberID,
		Title:     title,
		StartAt:   request.StartDate,
		EndAt:     request.EndDate,
		AllDay:    true,
		EntryType: model.EntryTypeTimeOff,
		Status:    model.EntryStatusScheduled,
		Source:    model.EntrySourceLocal,
	}
	if err := s.repo.Entry.Create(ctx, entry); err != nil {
		s.logger.Error("materialize time-off entry failed", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

func (s *timeOffService) List(ctx context.Context, req *dto.TimeOffListRequest) ([]dto.TimeOffResponse, error) {
	requests, err := s.repo.TimeOff.List(ctx, req.Status, req.MemberID)
	if err != nil {
		s.logger.Error("list time-off requests failed", zap.Error(err))
		return nil, err
	}
	resps := make([]dto.TimeOffResponse, 0, len(requests))
	for i := range requests {
		resps = append(resps, *timeOffToResponse(&requests[i]))
	}
	return resps, nil
}

func timeOffToResponse(m *model.TimeOffRequest) *dto.TimeOffResponse {
	resp := &dto.TimeOffResponse{
		ID:        m.RequestID,
		MemberID:  m.MemberID,
		StartDate: m.StartDate.Format(dto.DateLayout),
		EndDate:   m.EndDate.Format(dto.DateLayout),
		Category:  m.Category,
		Note:      m.Note,
		Status:    m.Status,
		EntryID:   m.EntryID,
		DecidedBy: m.DecidedBy,
	}
	if m.Member != nil {
		resp.MemberName = m.Member.Name
	}
	if m.DecidedAt != nil {
		decided := m.DecidedAt.Format(dto.DateTimeLayout)
		resp.DecidedAt = &decided
	}
	return resp
}
