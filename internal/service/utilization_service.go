package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/calendar"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/repository"
)

// UtilizationService aggregates scheduled hours against daily capacity.
type UtilizationService interface {
	GetReport(ctx context.Context, req *dto.UtilizationRequest) (*dto.UtilizationResponse, error)
}

type utilizationService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewUtilizationService creates a UtilizationService.
func NewUtilizationService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) UtilizationService {
	return &utilizationService{repo: repo, settings: settings, logger: logger}
}

func (s *utilizationService) GetReport(ctx context.Context, req *dto.UtilizationRequest) (*dto.UtilizationResponse, error) {
	window, err := resolveWindow(req.Granularity, req.Anchor, "")
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	roster, err := s.loadRoster(ctx, req.MemberIDs)
	if err != nil {
		return nil, err
	}

	fetchStart, fetchEnd := window.FetchBounds()
	entries, err := s.repo.Entry.ListWindow(ctx, fetchStart, fetchEnd, req.MemberIDs)
	if err != nil {
		s.logger.Error("list entries for utilization failed", zap.Error(err))
		return nil, err
	}

	report := calendar.Aggregate(entries, roster, window.Days, settings.CapacityHoursPerDay)

	return &dto.UtilizationResponse{
		Granularity: string(window.Granularity),
		Start:       window.Start.Format(dto.DateLayout),
		End:         window.End.Format(dto.DateLayout),
		Capacity:    settings.CapacityHoursPerDay,
		Report:      report,
	}, nil
}

// loadRoster returns the schedulable members, narrowed to the requested ids
// when a filter is given.
func (s *utilizationService) loadRoster(ctx context.Context, memberIDs []string) ([]model.TeamMember, error) {
	roster, err := s.repo.Member.ListSchedulable(ctx)
	if err != nil {
		s.logger.Error("list roster failed", zap.Error(err))
		return nil, err
	}
	if len(memberIDs) == 0 {
		return roster, nil
	}
	wanted := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		wanted[id] = true
	}
	filtered := make([]model.TeamMember, 0, len(roster))
	for _, m := range roster {
		if wanted[m.MemberID] {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}
