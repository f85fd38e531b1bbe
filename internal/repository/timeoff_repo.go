package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

// TimeOffRepository leave request data access.
type TimeOffRepository interface {
	Create(ctx context.Context, req *model.TimeOffRequest) error
	GetByID(ctx context.Context, id string) (*model.TimeOffRequest, error)
	List(ctx context.Context, status, memberID string) ([]model.TimeOffRequest, error)
	Update(ctx context.Context, req *model.TimeOffRequest) error
}

type timeOffRepo struct {
	db *gorm.DB
}

// NewTimeOffRepo creates a TimeOffRepository.
func NewTimeOffRepo(db *gorm.DB) TimeOffRepository {
	return &timeOffRepo{db: db}
}

func (r *timeOffRepo) Create(ctx context.Context, req *model.TimeOffRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *timeOffRepo) GetByID(ctx context.Context, id string) (*model.TimeOffRequest, error) {
	var req model.TimeOffRequest
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *timeOffRepo) List(ctx context.Context, status, memberID string) ([]model.TimeOffRequest, error) {
	q := r.db.WithContext(ctx).Preload("Member")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if memberID != "" {
		q = q.Where("member_id = ?", memberID)
	}

	var reqs []model.TimeOffRequest
	err := q.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *timeOffRepo) Update(ctx context.Context, req *model.TimeOffRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}
