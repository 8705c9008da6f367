package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

// BookingMemoryRepository keeps bookings in process memory. It enforces the
// same uniqueness rules as the Postgres indexes under a single lock.
type BookingMemoryRepository struct {
	mu       sync.RWMutex
	bookings []*models.Booking
}

func NewBookingMemoryRepository() *BookingMemoryRepository {
	return &BookingMemoryRepository{}
}

func (r *BookingMemoryRepository) Insert(
	ctx context.Context,
	b *models.Booking,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.Reference == b.Reference {
			return domain.ErrDuplicateReference
		}
		if b.IdempotencyKey != nil && existing.IdempotencyKey != nil &&
			existing.TuteeID == b.TuteeID && *existing.IdempotencyKey == *b.IdempotencyKey {
			return domain.ErrDuplicateIdempotencyKey
		}
		if b.Status == domain.StatusUpcoming && existing.Status == domain.StatusUpcoming &&
			existing.TutorID == b.TutorID && existing.Date == b.Date && existing.SlotStart == b.SlotStart {
			return domain.ErrSlotTaken
		}
	}

	now := time.Now()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	stored := *b
	r.bookings = append(r.bookings, &stored)
	return nil
}

func (r *BookingMemoryRepository) GetByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.Reference == reference {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *BookingMemoryRepository) GetByIdempotencyKey(
	ctx context.Context,
	tuteeID string,
	key string,
) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.TuteeID == tuteeID && b.IdempotencyKey != nil && *b.IdempotencyKey == key {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *BookingMemoryRepository) ListByTutor(
	ctx context.Context,
	tutorID string,
) ([]models.Booking, error) {
	return r.filter(func(b *models.Booking) bool { return b.TutorID == tutorID }), nil
}

func (r *BookingMemoryRepository) ListByTutee(
	ctx context.Context,
	tuteeID string,
) ([]models.Booking, error) {
	return r.filter(func(b *models.Booking) bool { return b.TuteeID == tuteeID }), nil
}

func (r *BookingMemoryRepository) ListUpcomingForTutor(
	ctx context.Context,
	tutorID string,
	fromDate string,
	toDate string,
) ([]models.Booking, error) {
	return r.filter(func(b *models.Booking) bool {
		return b.TutorID == tutorID &&
			b.Status == domain.StatusUpcoming &&
			b.Date >= fromDate && b.Date <= toDate
	}), nil
}

func (r *BookingMemoryRepository) UpdateStatus(
	ctx context.Context,
	b *models.Booking,
	expected domain.Status,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.bookings {
		if stored.Reference != b.Reference {
			continue
		}
		if stored.Status != string(expected) {
			return domain.ErrStaleStatus
		}
		stored.Status = b.Status
		stored.CancelledAt = b.CancelledAt
		stored.CompletedAt = b.CompletedAt
		stored.UpdatedAt = time.Now()
		b.UpdatedAt = stored.UpdatedAt
		return nil
	}
	return domain.ErrStaleStatus
}

func (r *BookingMemoryRepository) filter(keep func(*models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Booking, 0)
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, *b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].SlotStart < out[j].SlotStart
	})
	return out
}
