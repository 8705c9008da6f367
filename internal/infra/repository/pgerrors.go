package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

const pgUniqueViolation = "23505"

// classifyBookingInsert maps unique violations on the bookings table to the
// domain errors; anything else is returned unchanged.
func classifyBookingInsert(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case models.IndexBookingUpcomingSlot:
		return booking.ErrSlotTaken
	case models.IndexBookingIdempotency:
		return booking.ErrDuplicateIdempotencyKey
	case models.IndexBookingReference:
		return booking.ErrDuplicateReference
	default:
		return err
	}
}
