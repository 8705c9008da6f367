package dto

import "github.com/BruksfildServices01/tutor-booking/internal/models"

type AvailableDatesDTO struct {
	TutorID string   `json:"tutor_id"`
	Dates   []string `json:"dates"`
}

type SlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailableSlotsDTO struct {
	TutorID string    `json:"tutor_id"`
	Date    string    `json:"date"`
	Slots   []SlotDTO `json:"slots"`
	Message string    `json:"message,omitempty"`
}

// WindowRequest sets either Weekday (0=Sunday) or Date. ID is empty on create.
type WindowRequest struct {
	ID          string `json:"id"`
	Weekday     *int   `json:"weekday"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	SlotMinutes int    `json:"slot_minutes"`
}

func (r WindowRequest) Model() *models.AvailabilityWindow {
	return &models.AvailabilityWindow{
		ID:          r.ID,
		Weekday:     r.Weekday,
		Date:        r.Date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		SlotMinutes: r.SlotMinutes,
	}
}

// BlackoutRequest leaves StartTime and EndTime empty for a full day.
type BlackoutRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

func (r BlackoutRequest) Model() *models.Blackout {
	return &models.Blackout{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Reason:    r.Reason,
	}
}
