package availability

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

var ErrNotFound = errors.New("availability: not found")

type Repository interface {
	// -------- Windows --------
	ListWindows(
		ctx context.Context,
		tutorID string,
	) ([]models.AvailabilityWindow, error)

	GetWindow(
		ctx context.Context,
		tutorID string,
		id string,
	) (*models.AvailabilityWindow, error)

	SaveWindow(
		ctx context.Context,
		w *models.AvailabilityWindow,
	) error

	DeleteWindow(
		ctx context.Context,
		tutorID string,
		id string,
	) error

	// -------- Blackouts --------
	// ListBlackouts returns blackouts with fromDate <= date <= toDate.
	ListBlackouts(
		ctx context.Context,
		tutorID string,
		fromDate string,
		toDate string,
	) ([]models.Blackout, error)

	CreateBlackout(
		ctx context.Context,
		b *models.Blackout,
	) error

	DeleteBlackout(
		ctx context.Context,
		tutorID string,
		id string,
	) error
}
