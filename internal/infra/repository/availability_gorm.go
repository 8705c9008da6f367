package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/tutor-booking/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Windows
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListWindows(
	ctx context.Context,
	tutorID string,
) ([]models.AvailabilityWindow, error) {

	var ws []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("tutor_id = ?", tutorID).
		Find(&ws).Error; err != nil {
		return nil, err
	}

	domain.SortWindows(ws)
	return ws, nil
}

func (r *AvailabilityGormRepository) GetWindow(
	ctx context.Context,
	tutorID string,
	id string,
) (*models.AvailabilityWindow, error) {

	var w models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tutor_id = ?", id, tutorID).
		First(&w).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &w, nil
}

func (r *AvailabilityGormRepository) SaveWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	if w.ID == "" {
		return r.db.WithContext(ctx).Create(w).Error
	}
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *AvailabilityGormRepository) DeleteWindow(
	ctx context.Context,
	tutorID string,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND tutor_id = ?", id, tutorID).
		Delete(&models.AvailabilityWindow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Blackouts
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListBlackouts(
	ctx context.Context,
	tutorID string,
	fromDate string,
	toDate string,
) ([]models.Blackout, error) {

	var list []models.Blackout
	if err := r.db.WithContext(ctx).
		Where("tutor_id = ? AND date >= ? AND date <= ?", tutorID, fromDate, toDate).
		Order("date ASC, start_time ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AvailabilityGormRepository) CreateBlackout(
	ctx context.Context,
	b *models.Blackout,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *AvailabilityGormRepository) DeleteBlackout(
	ctx context.Context,
	tutorID string,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND tutor_id = ?", id, tutorID).
		Delete(&models.Blackout{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
