package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/tutor-booking/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
)

type AvailabilityMemoryRepository struct {
	mu        sync.RWMutex
	windows   map[string]models.AvailabilityWindow
	blackouts map[string]models.Blackout
}

func NewAvailabilityMemoryRepository() *AvailabilityMemoryRepository {
	return &AvailabilityMemoryRepository{
		windows:   make(map[string]models.AvailabilityWindow),
		blackouts: make(map[string]models.Blackout),
	}
}

// --------------------------------------------------
// Windows
// --------------------------------------------------

func (r *AvailabilityMemoryRepository) ListWindows(
	ctx context.Context,
	tutorID string,
) ([]models.AvailabilityWindow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AvailabilityWindow, 0)
	for _, w := range r.windows {
		if w.TutorID == tutorID {
			out = append(out, w)
		}
	}

	domain.SortWindows(out)
	return out, nil
}

func (r *AvailabilityMemoryRepository) GetWindow(
	ctx context.Context,
	tutorID string,
	id string,
) (*models.AvailabilityWindow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.windows[id]
	if !ok || w.TutorID != tutorID {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (r *AvailabilityMemoryRepository) SaveWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if w.ID == "" {
		w.ID = uuid.New().String()
		w.CreatedAt = now
	}
	w.UpdatedAt = now

	r.windows[w.ID] = *w
	return nil
}

func (r *AvailabilityMemoryRepository) DeleteWindow(
	ctx context.Context,
	tutorID string,
	id string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[id]
	if !ok || w.TutorID != tutorID {
		return domain.ErrNotFound
	}
	delete(r.windows, id)
	return nil
}

// --------------------------------------------------
// Blackouts
// --------------------------------------------------

func (r *AvailabilityMemoryRepository) ListBlackouts(
	ctx context.Context,
	tutorID string,
	fromDate string,
	toDate string,
) ([]models.Blackout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Blackout, 0)
	for _, b := range r.blackouts {
		if b.TutorID == tutorID && b.Date >= fromDate && b.Date <= toDate {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (r *AvailabilityMemoryRepository) CreateBlackout(
	ctx context.Context,
	b *models.Blackout,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now()

	r.blackouts[b.ID] = *b
	return nil
}

func (r *AvailabilityMemoryRepository) DeleteBlackout(
	ctx context.Context,
	tutorID string,
	id string,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blackouts[id]
	if !ok || b.TutorID != tutorID {
		return domain.ErrNotFound
	}
	delete(r.blackouts, id)
	return nil
}
