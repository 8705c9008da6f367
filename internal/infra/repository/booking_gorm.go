package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

// Insert relies on the partial unique index over upcoming bookings, so the
// availability check and the write are a single statement.
func (r *BookingGormRepository) Insert(
	ctx context.Context,
	b *models.Booking,
) error {
	return classifyBookingInsert(r.db.WithContext(ctx).Create(b).Error)
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *BookingGormRepository) GetByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&b).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetByIdempotencyKey(
	ctx context.Context,
	tuteeID string,
	key string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("tutee_id = ? AND idempotency_key = ?", tuteeID, key).
		First(&b).Error; err != nil {
		return nil, notFound(err, domain.ErrNotFound)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListByTutor(
	ctx context.Context,
	tutorID string,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Where("tutor_id = ?", tutorID).
		Order("date ASC, slot_start ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) ListByTutee(
	ctx context.Context,
	tuteeID string,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Where("tutee_id = ?", tuteeID).
		Order("date ASC, slot_start ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) ListUpcomingForTutor(
	ctx context.Context,
	tutorID string,
	fromDate string,
	toDate string,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "tutor_id", "date", "slot_start", "slot_end", "status").
		Where(
			"tutor_id = ? AND status = ? AND date >= ? AND date <= ?",
			tutorID, domain.StatusUpcoming, fromDate, toDate,
		).
		Order("date ASC, slot_start ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *BookingGormRepository) UpdateStatus(
	ctx context.Context,
	b *models.Booking,
	expected domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("reference = ? AND status = ?", b.Reference, string(expected)).
		Updates(map[string]any{
			"status":       b.Status,
			"cancelled_at": b.CancelledAt,
			"completed_at": b.CompletedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleStatus
	}
	return nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
