package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/repository"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/jwt"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/redis"
)

// ── auth module business errors ──

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMemberInactive     = errors.New("member account is deactivated")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

// AuthService handles login, token refresh and logout for team members.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, accessToken string) error
	Me(ctx context.Context, memberID string) (*dto.MemberResponse, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	redis  *redis.Client // nil disables the token blacklist
	logger *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, redis: rdb, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	member, err := s.repo.Member.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("lookup member failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !member.IsActive {
		return nil, ErrMemberInactive
	}

	// first successful login accepts the invitation
	if !member.InviteAccepted {
		member.InviteAccepted = true
		if err := s.repo.Member.Update(ctx, member); err != nil {
			s.logger.Error("accept invitation failed", zap.String("member_id", member.MemberID), zap.Error(err))
			return nil, err
		}
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(member.MemberID, member.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(member.MemberID, member.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Member:       memberToResponse(member),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.RefreshResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}
	if s.redis != nil {
		revoked, err := s.redis.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist lookup failed", zap.Error(err))
		} else if revoked {
			return nil, ErrInvalidRefresh
		}
	}

	member, err := s.repo.Member.GetByID(ctx, claims.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !member.IsActive {
		return nil, ErrMemberInactive
	}

	// rotate: the old refresh token is revoked once exchanged
	s.blacklistClaims(ctx, claims)

	accessToken, err := s.jwtMgr.GenerateAccessToken(member.MemberID, member.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(member.MemberID, member.Role)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtMgr.ParseToken(accessToken)
	if err != nil {
		// expired or garbage tokens need no revocation
		return nil
	}
	s.blacklistClaims(ctx, claims)
	return nil
}

func (s *authService) Me(ctx context.Context, memberID string) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return memberToResponse(member), nil
}

func (s *authService) blacklistClaims(ctx context.Context, claims *jwt.Claims) {
	if s.redis == nil || claims.ExpiresAt == nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.redis.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("blacklist token failed", zap.Error(err))
	}
}

func memberToResponse(m *model.TeamMember) *dto.MemberResponse {
	return &dto.MemberResponse{
		ID:             m.MemberID,
		Name:           m.Name,
		Email:          m.Email,
		Role:           m.Role,
		Color:          m.Color,
		IsActive:       m.IsActive,
		InviteAccepted: m.InviteAccepted,
	}
}
