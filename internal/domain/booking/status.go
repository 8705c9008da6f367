package booking

import "github.com/BruksfildServices01/tutor-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanCancel only allows leaving upcoming; completed and cancelled are terminal.
func CanCancel(current Status) error {
	if current != StatusUpcoming {
		return httperr.ErrInvalidTransition("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusUpcoming {
		return httperr.ErrInvalidTransition("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusUpcoming
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}
