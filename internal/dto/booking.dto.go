package dto

import (
	"time"

	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

type BookingDTO struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`

	TutorID string `json:"tutor_id"`
	TuteeID string `json:"tutee_id"`

	Date      string `json:"date"`
	SlotStart string `json:"slot_start"`
	SlotEnd   string `json:"slot_end"`

	Subject   string `json:"subject"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type MyBookingsDTO struct {
	Upcoming []BookingDTO `json:"upcoming"`
	Past     []BookingDTO `json:"past"`
}

func FromBooking(b *models.Booking) BookingDTO {
	return BookingDTO{
		Reference:   b.Reference,
		Status:      b.Status,
		TutorID:     b.TutorID,
		TuteeID:     b.TuteeID,
		Date:        b.Date,
		SlotStart:   b.SlotStart,
		SlotEnd:     b.SlotEnd,
		Subject:     b.Subject,
		FirstName:   b.FirstName,
		LastName:    b.LastName,
		Email:       b.Email,
		Phone:       b.Phone,
		Message:     b.Message,
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
		CompletedAt: b.CompletedAt,
	}
}

func FromBookings(list []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(list))
	for i := range list {
		out = append(out, FromBooking(&list[i]))
	}
	return out
}
