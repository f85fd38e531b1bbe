package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

// ProjectRepository project lookup. Projects are owned elsewhere in the
// product; the scheduling core only reads them for title autofill.
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*model.Project, error)
}

type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo creates a ProjectRepository.
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).Where("project_id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
