//go:build integration

package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/tutor-booking/internal/db"
	"github.com/BruksfildServices01/tutor-booking/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infra/repository/
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

// each test works on its own tutor so runs do not collide
func gormBooking(tutorID, tuteeID, start string) *models.Booking {
	b := newBooking("", tuteeID)
	b.TutorID = tutorID
	b.Reference = booking.NewReference()
	b.SlotStart = start
	b.SlotEnd = start[:2] + ":59"
	return b
}

func TestGormInsertAllowsOneUpcomingPerSlot(t *testing.T) {
	repo := NewBookingGormRepository(openTestDB(t))
	ctx := context.Background()
	tutorID := "tutor-" + uuid.NewString()

	const attempts = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		won   int
		taken int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Insert(ctx, gormBooking(tutorID, "tutee-"+uuid.NewString(), "09:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				won++
			case assert.ErrorIs(t, err, booking.ErrSlotTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, taken)
}

func TestGormCancelledSlotCanBeRebooked(t *testing.T) {
	repo := NewBookingGormRepository(openTestDB(t))
	ctx := context.Background()
	tutorID := "tutor-" + uuid.NewString()

	first := gormBooking(tutorID, "tutee-a", "10:00")
	require.NoError(t, repo.Insert(ctx, first))

	require.NoError(t, booking.Cancel(first, time.Now()))
	require.NoError(t, repo.UpdateStatus(ctx, first, booking.StatusUpcoming))

	// the second transition from the same expected status loses
	assert.ErrorIs(t, repo.UpdateStatus(ctx, first, booking.StatusUpcoming), booking.ErrStaleStatus)

	require.NoError(t, repo.Insert(ctx, gormBooking(tutorID, "tutee-b", "10:00")))

	upcoming, err := repo.ListUpcomingForTutor(ctx, tutorID, "2026-10-19", "2026-10-19")
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "tutee-b", upcoming[0].TuteeID)

	got, err := repo.GetByReference(ctx, first.Reference)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, got.Status)
	assert.NotNil(t, got.CancelledAt)
}

func TestGormIdempotencyAndReferenceUniqueness(t *testing.T) {
	repo := NewBookingGormRepository(openTestDB(t))
	ctx := context.Background()
	tutorID := "tutor-" + uuid.NewString()
	tuteeID := "tutee-" + uuid.NewString()
	key := "form-1"

	first := gormBooking(tutorID, tuteeID, "11:00")
	first.IdempotencyKey = &key
	require.NoError(t, repo.Insert(ctx, first))

	again := gormBooking(tutorID, tuteeID, "12:00")
	again.IdempotencyKey = &key
	assert.ErrorIs(t, repo.Insert(ctx, again), booking.ErrDuplicateIdempotencyKey)

	dupRef := gormBooking(tutorID, tuteeID, "13:00")
	dupRef.Reference = first.Reference
	assert.ErrorIs(t, repo.Insert(ctx, dupRef), booking.ErrDuplicateReference)

	got, err := repo.GetByIdempotencyKey(ctx, tuteeID, key)
	require.NoError(t, err)
	assert.Equal(t, first.Reference, got.Reference)

	_, err = repo.GetByReference(ctx, "BK-00000000")
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestGormAvailabilityRoundTrip(t *testing.T) {
	repo := NewAvailabilityGormRepository(openTestDB(t))
	ctx := context.Background()
	tutorID := "tutor-" + uuid.NewString()

	mon := int(time.Monday)
	for _, start := range []string{"13:00", "09:00"} {
		w := &models.AvailabilityWindow{
			TutorID: tutorID, Weekday: &mon, StartTime: start, EndTime: start[:2] + ":30", SlotMinutes: 30,
		}
		require.NoError(t, repo.SaveWindow(ctx, w))
		require.NotEmpty(t, w.ID)
	}

	ws, err := repo.ListWindows(ctx, tutorID)
	require.NoError(t, err)
	require.Len(t, ws, 2)
	assert.Equal(t, "09:00", ws[0].StartTime)
	assert.Equal(t, "13:00", ws[1].StartTime)

	require.NoError(t, repo.DeleteWindow(ctx, tutorID, ws[0].ID))
	assert.ErrorIs(t, repo.DeleteWindow(ctx, tutorID, ws[0].ID), availability.ErrNotFound)

	b := &models.Blackout{TutorID: tutorID, Date: "2026-10-19", Reason: "holiday"}
	require.NoError(t, repo.CreateBlackout(ctx, b))

	list, err := repo.ListBlackouts(ctx, tutorID, "2026-10-01", "2026-10-31")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.DeleteBlackout(ctx, tutorID, b.ID))
	assert.ErrorIs(t, repo.DeleteBlackout(ctx, tutorID, b.ID), availability.ErrNotFound)
}
