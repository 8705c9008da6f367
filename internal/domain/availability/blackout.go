package availability

import (
	"time"

	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
)

func ValidateBlackout(b *models.Blackout) error {
	if b.TutorID == "" {
		return httperr.ErrValidation("missing_tutor", "Tutor is required.")
	}
	if _, err := timezone.ParseDate(b.Date, time.UTC); err != nil {
		return httperr.ErrValidation("invalid_date", "Date must use the YYYY-MM-DD format.")
	}
	if b.IsFullDay() {
		return nil
	}
	if b.StartTime == "" || b.EndTime == "" {
		return httperr.ErrValidation("incomplete_range", "Provide both start and end time, or neither for a full day.")
	}

	start, err := ParseHM(b.StartTime)
	if err != nil {
		return httperr.ErrValidation("invalid_start_time", "Start time must use the HH:MM format.")
	}
	end, err := ParseHM(b.EndTime)
	if err != nil {
		return httperr.ErrValidation("invalid_end_time", "End time must use the HH:MM format.")
	}
	if start >= end {
		return httperr.ErrValidation("invalid_range", "Start time must be before end time.")
	}
	return nil
}

// Covers reports whether b removes [start, end) minutes on its date.
func Covers(b *models.Blackout, start, end int) bool {
	if b.IsFullDay() {
		return true
	}
	bs, err := ParseHM(b.StartTime)
	if err != nil {
		return false
	}
	be, err := ParseHM(b.EndTime)
	if err != nil {
		return false
	}
	return start < be && bs < end
}
