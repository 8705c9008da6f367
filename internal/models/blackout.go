package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Blackout removes availability on Date. Empty StartTime/EndTime means the whole day.
type Blackout struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	TutorID string `gorm:"size:128;index:idx_blackouts_tutor_date;not null" json:"tutor_id"`
	Date    string `gorm:"size:10;index:idx_blackouts_tutor_date;not null" json:"date"`

	StartTime string `gorm:"size:5" json:"start_time,omitempty"`
	EndTime   string `gorm:"size:5" json:"end_time,omitempty"`
	Reason    string `gorm:"size:255" json:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *Blackout) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

func (b *Blackout) IsFullDay() bool {
	return b.StartTime == "" && b.EndTime == ""
}
