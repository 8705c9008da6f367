package booking

import (
	"time"

	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// IsPast reports whether b belongs in the "past" list of a session view:
// terminal, or scheduled on a day before today.
func IsPast(b *models.Booking, today string) bool {
	return IsTerminal(Status(b.Status)) || b.Date < today
}
