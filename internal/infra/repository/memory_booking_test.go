package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

func newBooking(ref, tutee string) *models.Booking {
	return &models.Booking{
		Reference: ref,
		TutorID:   "tutor-1",
		TuteeID:   tutee,
		Date:      "2026-10-19",
		SlotStart: "09:00",
		SlotEnd:   "10:00",
		Subject:   "Algebra",
		Status:    booking.StatusUpcoming,
	}
}

func TestMemoryInsertAllowsOneUpcomingPerSlot(t *testing.T) {
	repo := NewBookingMemoryRepository()
	ctx := context.Background()

	const attempts = 20
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		won    int
		taken  int
		others []error
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Insert(ctx, newBooking(fmt.Sprintf("BK-%08X", i), fmt.Sprintf("tutee-%d", i)))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				won++
			case errors.Is(err, booking.ErrSlotTaken):
				taken++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, taken)
	assert.Empty(t, others)
}

func TestMemoryInsertFreesSlotAfterCancel(t *testing.T) {
	repo := NewBookingMemoryRepository()
	ctx := context.Background()

	first := newBooking("BK-00000001", "tutee-1")
	require.NoError(t, repo.Insert(ctx, first))
	assert.NotEmpty(t, first.ID)

	require.NoError(t, booking.Cancel(first, first.CreatedAt))
	require.NoError(t, repo.UpdateStatus(ctx, first, booking.StatusUpcoming))

	assert.NoError(t, repo.Insert(ctx, newBooking("BK-00000002", "tutee-2")))

	// a second transition against a stale expectation is refused
	assert.ErrorIs(t, repo.UpdateStatus(ctx, first, booking.StatusUpcoming), booking.ErrStaleStatus)
}

func TestMemoryInsertUniqueness(t *testing.T) {
	repo := NewBookingMemoryRepository()
	ctx := context.Background()

	key := "req-1"
	b := newBooking("BK-00000001", "tutee-1")
	b.IdempotencyKey = &key
	require.NoError(t, repo.Insert(ctx, b))

	dupRef := newBooking("BK-00000001", "tutee-2")
	dupRef.SlotStart = "11:00"
	assert.ErrorIs(t, repo.Insert(ctx, dupRef), booking.ErrDuplicateReference)

	dupKey := newBooking("BK-00000002", "tutee-1")
	dupKey.SlotStart = "11:00"
	dupKey.IdempotencyKey = &key
	assert.ErrorIs(t, repo.Insert(ctx, dupKey), booking.ErrDuplicateIdempotencyKey)

	got, err := repo.GetByIdempotencyKey(ctx, "tutee-1", key)
	require.NoError(t, err)
	assert.Equal(t, "BK-00000001", got.Reference)

	_, err = repo.GetByIdempotencyKey(ctx, "tutee-2", key)
	assert.ErrorIs(t, err, booking.ErrNotFound)
}

func TestMemoryListsAreCopiesInOrder(t *testing.T) {
	repo := NewBookingMemoryRepository()
	ctx := context.Background()

	late := newBooking("BK-00000002", "tutee-1")
	late.Date = "2026-10-26"
	require.NoError(t, repo.Insert(ctx, late))
	require.NoError(t, repo.Insert(ctx, newBooking("BK-00000001", "tutee-1")))

	list, err := repo.ListByTutee(ctx, "tutee-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "BK-00000001", list[0].Reference)

	list[0].Subject = "changed"
	got, err := repo.GetByReference(ctx, "BK-00000001")
	require.NoError(t, err)
	assert.Equal(t, "Algebra", got.Subject)

	upcoming, err := repo.ListUpcomingForTutor(ctx, "tutor-1", "2026-10-19", "2026-10-20")
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)

	empty, err := repo.ListByTutor(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
}

func TestClassifyBookingInsert(t *testing.T) {
	unique := func(constraint string) error {
		return fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraint})
	}

	assert.ErrorIs(t, classifyBookingInsert(unique(models.IndexBookingUpcomingSlot)), booking.ErrSlotTaken)
	assert.ErrorIs(t, classifyBookingInsert(unique(models.IndexBookingIdempotency)), booking.ErrDuplicateIdempotencyKey)
	assert.ErrorIs(t, classifyBookingInsert(unique(models.IndexBookingReference)), booking.ErrDuplicateReference)

	other := unique("some_other_index")
	assert.Equal(t, other, classifyBookingInsert(other))

	fk := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(fk), classifyBookingInsert(fk))
	assert.NoError(t, classifyBookingInsert(nil))
}
