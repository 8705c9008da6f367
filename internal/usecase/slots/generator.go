package slots

import (
	"context"
	"iter"
	"time"

	"github.com/BruksfildServices01/tutor-booking/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/domain/slot"
	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
)

const DefaultHorizonDays = 30

// Generator derives bookable dates and slots. It only reads.
type Generator struct {
	availability availability.Repository
	bookings     booking.Repository

	horizonDays int
	loc         *time.Location
	now         func() time.Time
}

type Option func(*Generator)

func WithHorizonDays(days int) Option {
	return func(g *Generator) {
		if days > 0 {
			g.horizonDays = days
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(g *Generator) {
		if loc != nil {
			g.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

func NewGenerator(
	av availability.Repository,
	bk booking.Repository,
	opts ...Option,
) *Generator {
	g := &Generator{
		availability: av,
		bookings:     bk,
		horizonDays:  DefaultHorizonDays,
		loc:          time.UTC,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Location() *time.Location {
	return g.loc
}

// Today is midnight of the current day in the generator's location.
func (g *Generator) Today() time.Time {
	return timezone.StartOfDay(g.now().In(g.loc))
}

// Horizon returns [today+1, today+days]. days <= 0 uses the configured horizon.
func (g *Generator) Horizon(days int) (time.Time, time.Time) {
	if days <= 0 {
		days = g.horizonDays
	}
	today := g.Today()
	return today.AddDate(0, 0, 1), today.AddDate(0, 0, days)
}

func (g *Generator) InHorizon(date time.Time) bool {
	first, last := g.Horizon(0)
	day := timezone.StartOfDay(date.In(g.loc))
	return !day.Before(first) && !day.After(last)
}

// ListAvailableDates returns the dates in the horizon with at least one free
// slot. Data is read once; the returned sequence replays that snapshot and
// can be ranged over any number of times.
func (g *Generator) ListAvailableDates(
	ctx context.Context,
	tutorID string,
	horizonDays int,
) (iter.Seq[time.Time], error) {

	first, last := g.Horizon(horizonDays)
	from, to := timezone.FormatDate(first), timezone.FormatDate(last)

	windows, err := g.availability.ListWindows(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return func(func(time.Time) bool) {}, nil
	}

	blackouts, err := g.availability.ListBlackouts(ctx, tutorID, from, to)
	if err != nil {
		return nil, err
	}

	upcoming, err := g.bookings.ListUpcomingForTutor(ctx, tutorID, from, to)
	if err != nil {
		return nil, err
	}

	return func(yield func(time.Time) bool) {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			free := slot.ForDay(slot.DayInput{
				TutorID:   tutorID,
				Date:      d,
				Windows:   windows,
				Blackouts: blackouts,
				Bookings:  upcoming,
			})
			if len(free) == 0 {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}, nil
}

// ListAvailableSlots returns the free slots of date ordered by start. Dates
// outside the horizon and days without windows yield an empty list.
func (g *Generator) ListAvailableSlots(
	ctx context.Context,
	tutorID string,
	date time.Time,
) ([]slot.Slot, error) {

	if !g.InHorizon(date) {
		return []slot.Slot{}, nil
	}

	day := timezone.StartOfDay(date.In(g.loc))
	key := timezone.FormatDate(day)

	windows, err := g.availability.ListWindows(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if len(availability.WindowsFor(day, windows)) == 0 {
		return []slot.Slot{}, nil
	}

	blackouts, err := g.availability.ListBlackouts(ctx, tutorID, key, key)
	if err != nil {
		return nil, err
	}

	upcoming, err := g.bookings.ListUpcomingForTutor(ctx, tutorID, key, key)
	if err != nil {
		return nil, err
	}

	return slot.ForDay(slot.DayInput{
		TutorID:   tutorID,
		Date:      day,
		Windows:   windows,
		Blackouts: blackouts,
		Bookings:  upcoming,
	}), nil
}

// IsAvailable reports whether a slot starting at start is currently offered on date.
func (g *Generator) IsAvailable(
	ctx context.Context,
	tutorID string,
	date time.Time,
	start string,
) (slot.Slot, bool, error) {

	free, err := g.ListAvailableSlots(ctx, tutorID, date)
	if err != nil {
		return slot.Slot{}, false, err
	}
	s, ok := slot.Find(free, start)
	return s, ok, nil
}
