package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
)

// EntryRepository schedule entry data access.
type EntryRepository interface {
	Create(ctx context.Context, entry *model.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error)
	// ListWindow returns every entry whose effective span intersects the
	// half-open range [start, end), optionally filtered by member.
	ListWindow(ctx context.Context, start, end time.Time, memberIDs []string) ([]model.ScheduleEntry, error)
	ListExternal(ctx context.Context) ([]model.ScheduleEntry, error)
	Update(ctx context.Context, entry *model.ScheduleEntry) error
	Delete(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, ids []string) error
}

type entryRepo struct {
	db *gorm.DB
}

// NewEntryRepo creates an EntryRepository.
func NewEntryRepo(db *gorm.DB) EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *entryRepo) GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Project").
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepo) ListWindow(ctx context.Context, start, end time.Time, memberIDs []string) ([]model.ScheduleEntry, error) {
	// All-day spans are date-inclusive, so their effective end is one day
	// past the stored end date.
	q := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Project").
		Where(`(all_day = false AND start_at < ? AND end_at > ?)
			OR (all_day = true AND start_at < ? AND (end_at + INTERVAL '1 day') > ?)`,
			end, start, end, start)

	if len(memberIDs) > 0 {
		q = q.Where("member_id IN ?", memberIDs)
	}

	var entries []model.ScheduleEntry
	err := q.Order("start_at ASC, title ASC").Find(&entries).Error
	return entries, err
}

func (r *entryRepo) ListExternal(ctx context.Context) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("source = ?", model.EntrySourceExternal).
		Find(&entries).Error
	return entries, err
}

func (r *entryRepo) Update(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *entryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		Delete(&model.ScheduleEntry{}).Error
}

func (r *entryRepo) DeleteBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("entry_id IN ?", ids).
		Delete(&model.ScheduleEntry{}).Error
}
