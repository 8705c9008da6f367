package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
)

const (
	MinSlotMinutes = 5
	MaxSlotMinutes = 480

	endOfDay = 24 * 60
)

// ParseHM converts "HH:MM" to minutes since midnight. Hours need two digits so
// stored times sort as strings. "24:00" is accepted as end of day.
func ParseHM(hm string) (int, error) {
	if hm == "24:00" {
		return endOfDay, nil
	}
	if len(hm) != len(timezone.TimeLayout) || hm[2] != ':' {
		return 0, fmt.Errorf("time %q is not HH:MM", hm)
	}
	t, err := time.Parse(timezone.TimeLayout, hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Bounds returns the window's start and end in minutes since midnight.
func Bounds(w *models.AvailabilityWindow) (int, int, error) {
	start, err := ParseHM(w.StartTime)
	if err != nil || start == endOfDay {
		return 0, 0, httperr.ErrValidation("invalid_start_time", "Start time must use the HH:MM format.")
	}
	end, err := ParseHM(w.EndTime)
	if err != nil {
		return 0, 0, httperr.ErrValidation("invalid_end_time", "End time must use the HH:MM format.")
	}
	return start, end, nil
}

func ValidateWindow(w *models.AvailabilityWindow) error {
	if w.TutorID == "" {
		return httperr.ErrValidation("missing_tutor", "Tutor is required.")
	}

	switch {
	case w.Weekday != nil && w.Date != "":
		return httperr.ErrValidation("ambiguous_day", "Use either a weekday or a date, not both.")
	case w.Weekday != nil:
		if *w.Weekday < 0 || *w.Weekday > 6 {
			return httperr.ErrValidation("invalid_weekday", "Weekday must be between 0 (Sunday) and 6 (Saturday).")
		}
	case w.Date != "":
		if _, err := timezone.ParseDate(w.Date, time.UTC); err != nil {
			return httperr.ErrValidation("invalid_date", "Date must use the YYYY-MM-DD format.")
		}
	default:
		return httperr.ErrValidation("missing_day", "A weekday or a date is required.")
	}

	start, end, err := Bounds(w)
	if err != nil {
		return err
	}
	if start >= end {
		return httperr.ErrValidation("invalid_range", "Start time must be before end time.")
	}

	if w.SlotMinutes < MinSlotMinutes || w.SlotMinutes > MaxSlotMinutes {
		return httperr.ErrValidation("invalid_slot_duration", "Slot duration must be between 5 and 480 minutes.")
	}
	if w.SlotMinutes > end-start {
		return httperr.ErrValidation("slot_longer_than_window", "Slot duration does not fit inside the window.")
	}

	return nil
}

// SameDay reports whether two windows compete for the same calendar day.
// A dated window never competes with a recurring one: it replaces it.
func SameDay(a, b *models.AvailabilityWindow) bool {
	if a.Weekday != nil && b.Weekday != nil {
		return *a.Weekday == *b.Weekday
	}
	return a.Date != "" && a.Date == b.Date
}

func Overlaps(a, b *models.AvailabilityWindow) bool {
	as, ae, err := Bounds(a)
	if err != nil {
		return false
	}
	bs, be, err := Bounds(b)
	if err != nil {
		return false
	}
	return as < be && bs < ae
}

// CheckAgainst validates w against the tutor's other windows: no overlap on the
// same day and one slot duration for the whole tutor.
func CheckAgainst(w *models.AvailabilityWindow, existing []models.AvailabilityWindow) error {
	for i := range existing {
		other := &existing[i]
		if other.ID == w.ID {
			continue
		}
		if other.SlotMinutes != w.SlotMinutes {
			return httperr.ErrValidation(
				"slot_duration_mismatch",
				fmt.Sprintf("All windows must use the same slot duration (%d minutes).", other.SlotMinutes),
			)
		}
		if SameDay(w, other) && Overlaps(w, other) {
			return httperr.ErrValidation(
				"window_overlap",
				fmt.Sprintf("Window overlaps %s-%s on the same day.", other.StartTime, other.EndTime),
			)
		}
	}
	return nil
}

// SortWindows orders recurring windows by weekday, then dated windows by date,
// each by start time.
func SortWindows(ws []models.AvailabilityWindow) {
	sort.SliceStable(ws, func(i, j int) bool {
		a, b := ws[i], ws[j]
		if a.IsRecurring() != b.IsRecurring() {
			return a.IsRecurring()
		}
		if a.IsRecurring() && *a.Weekday != *b.Weekday {
			return *a.Weekday < *b.Weekday
		}
		if !a.IsRecurring() && a.Date != b.Date {
			return a.Date < b.Date
		}
		return startMinutes(&a) < startMinutes(&b)
	})
}

// startMinutes sorts unparsable times last.
func startMinutes(w *models.AvailabilityWindow) int {
	m, err := ParseHM(w.StartTime)
	if err != nil {
		return endOfDay + 1
	}
	return m
}

// WindowsFor returns the windows that apply on date, sorted by start time.
// Dated windows replace the recurring windows of that weekday.
func WindowsFor(date time.Time, windows []models.AvailabilityWindow) []models.AvailabilityWindow {
	day := timezone.FormatDate(date)
	weekday := int(date.Weekday())

	var dated, recurring []models.AvailabilityWindow
	for _, w := range windows {
		switch {
		case w.Date == day:
			dated = append(dated, w)
		case w.Weekday != nil && *w.Weekday == weekday:
			recurring = append(recurring, w)
		}
	}

	out := recurring
	if len(dated) > 0 {
		out = dated
	}
	sort.SliceStable(out, func(i, j int) bool { return startMinutes(&out[i]) < startMinutes(&out[j]) })
	return out
}
