package slot

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/tutor-booking/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
)

// Slot is a bookable interval derived from availability. It is never stored.
type Slot struct {
	TutorID string `json:"tutor_id"`
	Date    string `json:"date"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// DayInput carries everything needed to derive one day's slots.
// Blackouts and Bookings may include other dates; they are filtered here.
type DayInput struct {
	TutorID   string
	Date      time.Time
	Windows   []models.AvailabilityWindow
	Blackouts []models.Blackout
	Bookings  []models.Booking
}

type interval struct {
	start int
	end   int
}

// ForDay returns the free slots of one day ordered by start time.
func ForDay(in DayInput) []Slot {
	day := timezone.FormatDate(in.Date)

	var blackouts []models.Blackout
	for _, b := range in.Blackouts {
		if b.Date == day {
			blackouts = append(blackouts, b)
		}
	}

	var busy []interval
	for _, b := range in.Bookings {
		if b.Date != day || b.Status != booking.StatusUpcoming {
			continue
		}
		start, err := availability.ParseHM(b.SlotStart)
		if err != nil {
			continue
		}
		end, err := availability.ParseHM(b.SlotEnd)
		if err != nil || end <= start {
			end = start + 1
		}
		busy = append(busy, interval{start: start, end: end})
	}

	slots := make([]Slot, 0)
	for _, w := range availability.WindowsFor(in.Date, in.Windows) {
		ws, we, err := availability.Bounds(&w)
		if err != nil || w.SlotMinutes <= 0 {
			continue
		}

		for t := ws; t+w.SlotMinutes <= we; t += w.SlotMinutes {
			end := t + w.SlotMinutes
			if blackedOut(blackouts, t, end) || overlapsAny(t, end, busy) {
				continue
			}
			slots = append(slots, Slot{
				TutorID: in.TutorID,
				Date:    day,
				Start:   availability.FormatHM(t),
				End:     availability.FormatHM(end),
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })
	return slots
}

// Find returns the slot starting at start, if offered.
func Find(slots []Slot, start string) (Slot, bool) {
	for _, s := range slots {
		if s.Start == start {
			return s, true
		}
	}
	return Slot{}, false
}

func blackedOut(blackouts []models.Blackout, start, end int) bool {
	for i := range blackouts {
		if availability.Covers(&blackouts[i], start, end) {
			return true
		}
	}
	return false
}

func overlapsAny(start, end int, busy []interval) bool {
	for _, b := range busy {
		// half-open: [start,end) overlaps [b.start,b.end)
		if start < b.end && b.start < end {
			return true
		}
	}
	return false
}
