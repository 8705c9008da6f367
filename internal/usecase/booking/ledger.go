package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-booking/internal/audit"
	domain "github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/domain/slot"
	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
)

const referenceAttempts = 3

// SlotChecker is the read side the ledger consults before writing.
type SlotChecker interface {
	Location() *time.Location
	InHorizon(date time.Time) bool
	IsAvailable(ctx context.Context, tutorID string, date time.Time, start string) (slot.Slot, bool, error)
}

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	TutorID string
	TuteeID string

	Date      string
	SlotStart string
	SlotEnd   string

	Subject string
	Contact domain.Contact
	Message string

	IdempotencyKey string
}

// ======================================================
// LEDGER
// ======================================================

type Ledger struct {
	repo  domain.Repository
	slots SlotChecker
	audit *audit.Dispatcher
	log   *zap.Logger
	now   func() time.Time
}

func NewLedger(
	repo domain.Repository,
	slots SlotChecker,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Ledger {
	return &Ledger{
		repo:  repo,
		slots: slots,
		audit: audit,
		log:   log.Named("ledger"),
		now:   time.Now,
	}
}

// Create commits a booking for a currently offered slot. The second return
// value is true when an earlier booking with the same idempotency key was
// returned instead of writing a new one.
func (l *Ledger) Create(ctx context.Context, in CreateInput) (*models.Booking, bool, error) {

	// --------------------------------------------------
	// 1. Replay
	// --------------------------------------------------
	if in.IdempotencyKey != "" {
		if existing, err := l.replay(ctx, in.TuteeID, in.IdempotencyKey); err != nil || existing != nil {
			return existing, existing != nil, err
		}
	}

	// --------------------------------------------------
	// 2. Date within horizon
	// --------------------------------------------------
	date, err := timezone.ParseDate(in.Date, l.slots.Location())
	if err != nil {
		return nil, false, httperr.ErrValidation("invalid_date", "Date must use the YYYY-MM-DD format.")
	}
	if !l.slots.InHorizon(date) {
		return nil, false, httperr.ErrValidation("date_outside_horizon", "This date cannot be booked. Please pick another date.")
	}

	// --------------------------------------------------
	// 3. Slot currently offered
	// --------------------------------------------------
	s, ok, err := l.slots.IsAvailable(ctx, in.TutorID, date, in.SlotStart)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, httperr.ErrSlotUnavailable("slot_unavailable")
	}
	if in.SlotEnd != "" && in.SlotEnd != s.End {
		return nil, false, httperr.ErrSlotUnavailable("slot_mismatch")
	}

	b := &models.Booking{
		TutorID:   in.TutorID,
		TuteeID:   in.TuteeID,
		Date:      s.Date,
		SlotStart: s.Start,
		SlotEnd:   s.End,
		Subject:   in.Subject,
		FirstName: in.Contact.FirstName,
		LastName:  in.Contact.LastName,
		Email:     in.Contact.Email,
		Phone:     in.Contact.Phone,
		Message:   in.Message,
		Status:    string(domain.InitialStatus()),
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		b.IdempotencyKey = &key
	}

	// --------------------------------------------------
	// 4. Atomic insert
	// --------------------------------------------------
	if err := l.insert(ctx, b); err != nil {
		if in.IdempotencyKey != "" &&
			(errors.Is(err, domain.ErrDuplicateIdempotencyKey) || errors.Is(err, domain.ErrSlotTaken)) {
			// a concurrent request with the same key may have won
			if existing, rerr := l.replay(ctx, in.TuteeID, in.IdempotencyKey); rerr == nil && existing != nil {
				return existing, true, nil
			}
		}
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, false, httperr.ErrSlotUnavailable("slot_taken")
		}
		return nil, false, err
	}

	l.audit.Dispatch(audit.Event{
		ActorID:  in.TuteeID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.Reference,
		Metadata: map[string]string{
			"tutor_id":   b.TutorID,
			"date":       b.Date,
			"slot_start": b.SlotStart,
		},
	})

	l.log.Info("booking created",
		zap.String("reference", b.Reference),
		zap.String("tutor_id", b.TutorID),
		zap.String("date", b.Date),
		zap.String("slot_start", b.SlotStart),
	)

	return b, false, nil
}

func (l *Ledger) insert(ctx context.Context, b *models.Booking) error {
	var err error
	for range referenceAttempts {
		b.Reference = domain.NewReference()

		err = l.repo.Insert(ctx, b)
		if !errors.Is(err, domain.ErrDuplicateReference) {
			return err
		}
		l.log.Warn("booking reference collision", zap.String("reference", b.Reference))
	}
	return err
}

func (l *Ledger) replay(ctx context.Context, tuteeID, key string) (*models.Booking, error) {
	existing, err := l.repo.GetByIdempotencyKey(ctx, tuteeID, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// ======================================================
// READ
// ======================================================

func (l *Ledger) Get(ctx context.Context, reference string) (*models.Booking, error) {
	b, err := l.repo.GetByReference(ctx, reference)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("booking_not_found", "Booking not found.")
	}
	return b, err
}

// ListByTutor returns every booking of the tutor regardless of status.
func (l *Ledger) ListByTutor(ctx context.Context, tutorID string) ([]models.Booking, error) {
	return l.repo.ListByTutor(ctx, tutorID)
}

// ListByTutee returns every booking of the tutee regardless of status.
func (l *Ledger) ListByTutee(ctx context.Context, tuteeID string) ([]models.Booking, error) {
	return l.repo.ListByTutee(ctx, tuteeID)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (l *Ledger) Cancel(ctx context.Context, reference, actorID string) (*models.Booking, error) {
	return l.transition(ctx, reference, actorID, "booking_cancelled", domain.Cancel)
}

func (l *Ledger) Complete(ctx context.Context, reference, actorID string) (*models.Booking, error) {
	return l.transition(ctx, reference, actorID, "booking_completed", domain.Complete)
}

func (l *Ledger) transition(
	ctx context.Context,
	reference string,
	actorID string,
	action string,
	apply func(*models.Booking, time.Time) error,
) (*models.Booking, error) {

	b, err := l.Get(ctx, reference)
	if err != nil {
		return nil, err
	}

	expected := domain.Status(b.Status)
	if err := apply(b, l.now()); err != nil {
		return nil, err
	}

	if err := l.repo.UpdateStatus(ctx, b, expected); err != nil {
		if errors.Is(err, domain.ErrStaleStatus) {
			return nil, httperr.ErrInvalidTransition("invalid_state")
		}
		return nil, err
	}

	l.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   action,
		Entity:   "booking",
		EntityID: b.Reference,
		Metadata: map[string]string{"from": string(expected), "to": b.Status},
	})

	l.log.Info(action, zap.String("reference", b.Reference), zap.String("actor_id", actorID))
	return b, nil
}
