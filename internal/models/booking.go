package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	IndexBookingReference    = "ux_bookings_reference"
	IndexBookingUpcomingSlot = "ux_bookings_upcoming_slot"
	IndexBookingIdempotency  = "ux_bookings_idempotency"
)

type Booking struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	Reference string `gorm:"size:16;uniqueIndex:ux_bookings_reference;not null" json:"reference"`

	TutorID string `gorm:"size:128;index:idx_bookings_tutor;not null" json:"tutor_id"`
	TuteeID string `gorm:"size:128;index:idx_bookings_tutee;not null" json:"tutee_id"`

	Date      string `gorm:"size:10;not null" json:"date"`
	SlotStart string `gorm:"size:5;not null" json:"slot_start"`
	SlotEnd   string `gorm:"size:5;not null" json:"slot_end"`

	Subject   string `gorm:"size:120;not null" json:"subject"`
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Phone     string `gorm:"size:32;not null" json:"phone"`
	Message   string `gorm:"type:text" json:"message,omitempty"`

	Status         string  `gorm:"size:20;not null;default:'upcoming'" json:"status"`
	IdempotencyKey *string `gorm:"size:128" json:"-"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

func (b *Booking) HasParty(userID string) bool {
	return userID != "" && (b.TutorID == userID || b.TuteeID == userID)
}
