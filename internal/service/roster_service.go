package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/repository"
)

// RosterService exposes the team roster and per-member display settings.
type RosterService interface {
	List(ctx context.Context) ([]dto.MemberResponse, error)
	UpdateColor(ctx context.Context, memberID string, req *dto.UpdateMemberColorRequest) (*dto.MemberResponse, error)
}

type rosterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRosterService creates a RosterService.
func NewRosterService(repo *repository.Repository, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, logger: logger}
}

func (s *rosterService) List(ctx context.Context) ([]dto.MemberResponse, error) {
	members, err := s.repo.Member.List(ctx)
	if err != nil {
		s.logger.Error("list roster failed", zap.Error(err))
		return nil, err
	}
	resps := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		resps = append(resps, *memberToResponse(&members[i]))
	}
	return resps, nil
}

func (s *rosterService) UpdateColor(ctx context.Context, memberID string, req *dto.UpdateMemberColorRequest) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	member.Color = req.Color
	if err := s.repo.Member.Update(ctx, member); err != nil {
		s.logger.Error("update member color failed", zap.String("member_id", memberID), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Member.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return memberToResponse(updated), nil
}
