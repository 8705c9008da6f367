package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityWindow is either recurring (Weekday set) or tied to one Date.
type AvailabilityWindow struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	TutorID string `gorm:"size:128;index;not null" json:"tutor_id"`

	Weekday *int   `json:"weekday,omitempty"`
	Date    string `gorm:"size:10" json:"date,omitempty"`

	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	SlotMinutes int    `gorm:"not null;default:60" json:"slot_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *AvailabilityWindow) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

func (w *AvailabilityWindow) IsRecurring() bool {
	return w.Weekday != nil
}
