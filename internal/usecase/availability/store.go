package availability

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-booking/internal/audit"
	domain "github.com/BruksfildServices01/tutor-booking/internal/domain/availability"
	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
)

// Invalidator drops anything derived from a tutor's availability.
type Invalidator interface {
	Invalidate(ctx context.Context, tutorID string)
}

// ======================================================
// USE CASE
// ======================================================

type Store struct {
	repo        domain.Repository
	invalidator Invalidator
	audit       *audit.Dispatcher
	log         *zap.Logger

	// serializes validate-then-save so two concurrent upserts cannot both pass the overlap check
	writeMu sync.Mutex
}

func NewStore(
	repo domain.Repository,
	invalidator Invalidator,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Store {
	return &Store{
		repo:        repo,
		invalidator: invalidator,
		audit:       audit,
		log:         log.Named("availability"),
	}
}

// ======================================================
// WINDOWS
// ======================================================

// GetWindows returns recurring windows by weekday, then dated windows by date,
// each by start time.
func (s *Store) GetWindows(ctx context.Context, tutorID string) ([]models.AvailabilityWindow, error) {
	return s.repo.ListWindows(ctx, tutorID)
}

func (s *Store) GetWindow(ctx context.Context, tutorID, id string) (*models.AvailabilityWindow, error) {
	w, err := s.repo.GetWindow(ctx, tutorID, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("window_not_found", "Availability window not found.")
	}
	return w, err
}

func (s *Store) UpsertWindow(
	ctx context.Context,
	tutorID string,
	w *models.AvailabilityWindow,
) (*models.AvailabilityWindow, error) {

	w.TutorID = tutorID
	if err := domain.ValidateWindow(w); err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if w.ID != "" {
		existing, err := s.GetWindow(ctx, tutorID, w.ID)
		if err != nil {
			return nil, err
		}
		w.CreatedAt = existing.CreatedAt
	}

	current, err := s.repo.ListWindows(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckAgainst(w, current); err != nil {
		return nil, err
	}

	if err := s.repo.SaveWindow(ctx, w); err != nil {
		return nil, err
	}

	s.changed(ctx, tutorID, "availability_window_saved", "availability_window", w.ID, map[string]any{
		"weekday": w.Weekday,
		"date":    w.Date,
		"start":   w.StartTime,
		"end":     w.EndTime,
	})
	return w, nil
}

func (s *Store) RemoveWindow(ctx context.Context, tutorID, id string) error {
	if err := s.repo.DeleteWindow(ctx, tutorID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("window_not_found", "Availability window not found.")
		}
		return err
	}

	s.changed(ctx, tutorID, "availability_window_removed", "availability_window", id, nil)
	return nil
}

// ======================================================
// BLACKOUTS
// ======================================================

// GetBlackouts returns blackouts with from <= date <= to (YYYY-MM-DD).
func (s *Store) GetBlackouts(ctx context.Context, tutorID, from, to string) ([]models.Blackout, error) {
	fromDate, err := timezone.ParseDate(from, time.UTC)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_from", "From must use the YYYY-MM-DD format.")
	}
	toDate, err := timezone.ParseDate(to, time.UTC)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_to", "To must use the YYYY-MM-DD format.")
	}
	if toDate.Before(fromDate) {
		return nil, httperr.ErrValidation("invalid_range", "From must not be after to.")
	}

	return s.repo.ListBlackouts(ctx, tutorID, from, to)
}

func (s *Store) AddBlackout(ctx context.Context, tutorID string, b *models.Blackout) (*models.Blackout, error) {
	b.TutorID = tutorID
	b.ID = ""
	if err := domain.ValidateBlackout(b); err != nil {
		return nil, err
	}

	if err := s.repo.CreateBlackout(ctx, b); err != nil {
		return nil, err
	}

	s.changed(ctx, tutorID, "blackout_added", "blackout", b.ID, map[string]any{
		"date":  b.Date,
		"start": b.StartTime,
		"end":   b.EndTime,
	})
	return b, nil
}

func (s *Store) RemoveBlackout(ctx context.Context, tutorID, id string) error {
	if err := s.repo.DeleteBlackout(ctx, tutorID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrNotFound("blackout_not_found", "Blackout not found.")
		}
		return err
	}

	s.changed(ctx, tutorID, "blackout_removed", "blackout", id, nil)
	return nil
}

// ======================================================
// HELPERS
// ======================================================

func (s *Store) changed(ctx context.Context, tutorID, action, entity, entityID string, meta map[string]any) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, tutorID)
	}

	s.audit.Dispatch(audit.Event{
		ActorID:  tutorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	})

	s.log.Debug(action, zap.String("tutor_id", tutorID), zap.String("id", entityID))
}
