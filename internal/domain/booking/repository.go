package booking

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

var (
	ErrNotFound = errors.New("booking: not found")

	// ErrSlotTaken means another upcoming booking already holds (tutor, date, slot start).
	ErrSlotTaken = errors.New("booking: slot already taken")

	ErrDuplicateIdempotencyKey = errors.New("booking: duplicate idempotency key")
	ErrDuplicateReference      = errors.New("booking: duplicate reference")

	// ErrStaleStatus means the booking left the expected status before the update landed.
	ErrStaleStatus = errors.New("booking: status changed concurrently")
)

type Repository interface {
	// -------- Create --------
	// Insert must be atomic with respect to the upcoming-slot, reference and
	// idempotency uniqueness rules and report violations with the errors above.
	Insert(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Read --------
	GetByReference(
		ctx context.Context,
		reference string,
	) (*models.Booking, error)

	GetByIdempotencyKey(
		ctx context.Context,
		tuteeID string,
		key string,
	) (*models.Booking, error)

	ListByTutor(
		ctx context.Context,
		tutorID string,
	) ([]models.Booking, error)

	ListByTutee(
		ctx context.Context,
		tuteeID string,
	) ([]models.Booking, error)

	// ListUpcomingForTutor returns upcoming bookings with fromDate <= date <= toDate.
	ListUpcomingForTutor(
		ctx context.Context,
		tutorID string,
		fromDate string,
		toDate string,
	) ([]models.Booking, error)

	// -------- State change --------
	// UpdateStatus persists b's status and timestamps only if the stored status
	// still equals expected; otherwise it returns ErrStaleStatus.
	UpdateStatus(
		ctx context.Context,
		b *models.Booking,
		expected Status,
	) error
}
