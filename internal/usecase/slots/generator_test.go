package slots

import (
	"context"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/infra/repository"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
)

// Friday 2026-10-16; the next Monday is 2026-10-19.
var fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

type fixture struct {
	av  *repository.AvailabilityMemoryRepository
	bk  *repository.BookingMemoryRepository
	gen *Generator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		av: repository.NewAvailabilityMemoryRepository(),
		bk: repository.NewBookingMemoryRepository(),
	}
	f.gen = NewGenerator(f.av, f.bk, WithClock(func() time.Time { return fixedNow }))

	wd := int(time.Monday)
	require.NoError(t, f.av.SaveWindow(context.Background(), &models.AvailabilityWindow{
		TutorID: "tutor-1", Weekday: &wd, StartTime: "09:00", EndTime: "12:00", SlotMinutes: 60,
	}))
	return f
}

func (f *fixture) book(t *testing.T, ref, date, start, end string) {
	t.Helper()
	require.NoError(t, f.bk.Insert(context.Background(), &models.Booking{
		Reference: ref, TutorID: "tutor-1", TuteeID: "tutee-1",
		Date: date, SlotStart: start, SlotEnd: end, Status: booking.StatusUpcoming,
	}))
}

func formatted(seq iter.Seq[time.Time]) []string {
	var out []string
	for d := range seq {
		out = append(out, timezone.FormatDate(d))
	}
	return out
}

func TestListAvailableDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.av.CreateBlackout(ctx, &models.Blackout{TutorID: "tutor-1", Date: "2026-10-26"}))
	f.book(t, "BK-00000001", "2026-11-02", "09:00", "10:00")
	f.book(t, "BK-00000002", "2026-11-02", "10:00", "11:00")
	f.book(t, "BK-00000003", "2026-11-02", "11:00", "12:00")

	seq, err := f.gen.ListAvailableDates(ctx, "tutor-1", 0)
	require.NoError(t, err)

	first := formatted(seq)
	assert.Equal(t, []string{"2026-10-19", "2026-11-09"}, first)

	// the sequence is restartable and replays the same snapshot
	f.book(t, "BK-00000004", "2026-11-09", "09:00", "10:00")
	assert.Equal(t, first, formatted(seq))
}

func TestListAvailableDatesHonoursHorizon(t *testing.T) {
	f := newFixture(t)

	seq, err := f.gen.ListAvailableDates(context.Background(), "tutor-1", 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-10-19"}, formatted(seq))

	seq, err = f.gen.ListAvailableDates(context.Background(), "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, formatted(seq))
}

func TestListAvailableDatesStopsEarly(t *testing.T) {
	f := newFixture(t)

	seq, err := f.gen.ListAvailableDates(context.Background(), "tutor-1", 0)
	require.NoError(t, err)

	var got []time.Time
	for d := range seq {
		got = append(got, d)
		break
	}
	require.Len(t, got, 1)
	assert.Equal(t, time.Monday, got[0].Weekday())
}

func TestListAvailableSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	slots, err := f.gen.ListAvailableSlots(ctx, "tutor-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "12:00", slots[2].End)

	f.book(t, "BK-00000001", "2026-10-19", "10:00", "11:00")
	slots, err = f.gen.ListAvailableSlots(ctx, "tutor-1", monday)
	require.NoError(t, err)
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	assert.Equal(t, []string{"09:00", "11:00"}, starts)
}

func TestListAvailableSlotsOutsideHorizonIsEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, d := range []time.Time{
		fixedNow, // today
		time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), // past Monday
		time.Date(2026, 11, 23, 0, 0, 0, 0, time.UTC), // Monday beyond 30 days
	} {
		slots, err := f.gen.ListAvailableSlots(ctx, "tutor-1", d)
		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots, timezone.FormatDate(d))
	}
}

func TestIsAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	s, ok, err := f.gen.IsAvailable(ctx, "tutor-1", monday, "09:00")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "10:00", s.End)

	_, ok, err = f.gen.IsAvailable(ctx, "tutor-1", monday, "09:30")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTodayUsesLocation(t *testing.T) {
	// 23:30 UTC on Friday is already Saturday in Tokyo
	late := time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)

	g := NewGenerator(nil, nil, WithClock(func() time.Time { return late }), WithLocation(tokyo))
	assert.Equal(t, "2026-10-17", timezone.FormatDate(g.Today()))

	first, last := g.Horizon(2)
	assert.Equal(t, []string{"2026-10-18", "2026-10-19"},
		[]string{timezone.FormatDate(first), timezone.FormatDate(last)})
	assert.True(t, g.InHorizon(first))
	assert.False(t, g.InHorizon(g.Today()))
}
