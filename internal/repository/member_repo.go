package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

// MemberRepository team roster data access.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*model.TeamMember, error)
	GetByEmail(ctx context.Context, email string) (*model.TeamMember, error)
	List(ctx context.Context) ([]model.TeamMember, error)
	ListSchedulable(ctx context.Context) ([]model.TeamMember, error)
	GetOwner(ctx context.Context) (*model.TeamMember, error)
	Update(ctx context.Context, member *model.TeamMember) error
}

type memberRepo struct {
	db *gorm.DB
}

// NewMemberRepo creates a MemberRepository.
func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) GetByID(ctx context.Context, id string) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.WithContext(ctx).Where("member_id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepo) GetByEmail(ctx context.Context, email string) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepo) List(ctx context.Context) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.db.WithContext(ctx).Order("name ASC").Find(&members).Error
	return members, err
}

func (r *memberRepo) ListSchedulable(ctx context.Context) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND invite_accepted = ?", true, true).
		Order("name ASC").
		Find(&members).Error
	return members, err
}

func (r *memberRepo) GetOwner(ctx context.Context) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.WithContext(ctx).
		Where("role = ?", model.RoleOwner).
		Order("created_at ASC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepo) Update(ctx context.Context, member *model.TeamMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}
