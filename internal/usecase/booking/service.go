package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/domain/slot"
	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
	"github.com/BruksfildServices01/tutor-booking/internal/models"
	"github.com/BruksfildServices01/tutor-booking/internal/notify"
	"github.com/BruksfildServices01/tutor-booking/internal/retry"
	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
	"github.com/BruksfildServices01/tutor-booking/internal/usecase/slots"
	"github.com/BruksfildServices01/tutor-booking/internal/validators"
)

const (
	NoSlotsMessage = "No available slots on this date. Please pick another date."

	maxIdempotencyKey = 128
)

// DatesCache holds each tutor's available-date list for one day.
type DatesCache interface {
	Get(ctx context.Context, tutorID, day string) ([]string, bool)
	Set(ctx context.Context, tutorID, day string, dates []string)
	Invalidate(ctx context.Context, tutorID string)
}

// Actor is the authenticated caller, as supplied by the identity provider.
// Email is the account address, which may differ from the contact email on
// the booking form.
type Actor struct {
	UserID string
	Email  string
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SubmitRequest struct {
	TutorID   string `json:"tutor_id" validate:"required,max=128"`
	Date      string `json:"date" validate:"required,isodate"`
	SlotStart string `json:"slot_start" validate:"required,hhmm"`
	SlotEnd   string `json:"slot_end" validate:"omitempty,len=5"`

	domain.Contact

	Subject string `json:"subject" validate:"required,max=120"`
	Message string `json:"message" validate:"max=2000"`

	IdempotencyKey string `json:"-" validate:"-"`
}

type SlotsResult struct {
	Date    string      `json:"date"`
	Slots   []slot.Slot `json:"slots"`
	Message string      `json:"message,omitempty"`
}

type MyBookings struct {
	Upcoming []models.Booking `json:"upcoming"`
	Past     []models.Booking `json:"past"`
}

var fieldLabels = map[string]string{
	"tutor_id":   "Tutor",
	"date":       "Date",
	"slot_start": "Slot start",
	"slot_end":   "Slot end",
	"first_name": "First name",
	"last_name":  "Last name",
	"email":      "Email",
	"phone":      "Phone number",
	"subject":    "Subject",
	"message":    "Message",
}

// ======================================================
// SERVICE
// ======================================================

type Service struct {
	generator *slots.Generator
	ledger    *Ledger
	cache     DatesCache
	reads     *retry.Reads
	notifier  *notify.Dispatcher
	validate  *validator.Validate
	log       *zap.Logger
}

func NewService(
	generator *slots.Generator,
	ledger *Ledger,
	cache DatesCache,
	reads *retry.Reads,
	notifier *notify.Dispatcher,
	log *zap.Logger,
) *Service {
	return &Service{
		generator: generator,
		ledger:    ledger,
		cache:     cache,
		reads:     reads,
		notifier:  notifier,
		validate:  validators.New(),
		log:       log.Named("booking"),
	}
}

// GetAvailableDates lists bookable dates (YYYY-MM-DD) within the horizon.
func (s *Service) GetAvailableDates(ctx context.Context, tutorID string) ([]string, error) {
	day := timezone.FormatDate(s.generator.Today())

	if s.cache != nil {
		if dates, ok := s.cache.Get(ctx, tutorID, day); ok {
			return dates, nil
		}
	}

	dates, err := retry.Do(ctx, s.reads, "available_dates", func(ctx context.Context) ([]string, error) {
		seq, err := s.generator.ListAvailableDates(ctx, tutorID, 0)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0)
		for d := range seq {
			out = append(out, timezone.FormatDate(d))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, tutorID, day, dates)
	}
	return dates, nil
}

// GetAvailableSlots lists free slots on date. An empty result carries a
// message asking the user to pick another date.
func (s *Service) GetAvailableSlots(ctx context.Context, tutorID, date string) (*SlotsResult, error) {
	d, err := timezone.ParseDate(date, s.generator.Location())
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "Date must use the YYYY-MM-DD format.")
	}

	free, err := retry.Do(ctx, s.reads, "available_slots", func(ctx context.Context) ([]slot.Slot, error) {
		return s.generator.ListAvailableSlots(ctx, tutorID, d)
	})
	if err != nil {
		return nil, err
	}

	res := &SlotsResult{Date: date, Slots: free}
	if len(free) == 0 {
		res.Message = NoSlotsMessage
	}
	return res, nil
}

// SubmitBooking validates the form and commits the booking for actor as tutee.
func (s *Service) SubmitBooking(ctx context.Context, actor Actor, req SubmitRequest) (*models.Booking, error) {
	if actor.UserID == "" {
		return nil, httperr.ErrUnauthorized("unauthenticated")
	}

	normalize(&req)
	if err := s.check(req); err != nil {
		return nil, err
	}
	if len(req.IdempotencyKey) > maxIdempotencyKey {
		return nil, httperr.ErrValidation("invalid_idempotency_key", "Idempotency-Key must be at most 128 characters.")
	}
	if req.TutorID == actor.UserID {
		return nil, httperr.ErrValidation("self_booking", "You cannot book a session with yourself.")
	}

	b, replayed, err := s.ledger.Create(ctx, CreateInput{
		TutorID:        req.TutorID,
		TuteeID:        actor.UserID,
		Date:           req.Date,
		SlotStart:      req.SlotStart,
		SlotEnd:        req.SlotEnd,
		Subject:        req.Subject,
		Contact:        req.Contact,
		Message:        req.Message,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	if replayed {
		s.log.Info("idempotent replay", zap.String("reference", b.Reference))
		return b, nil
	}

	s.invalidate(ctx, b.TutorID)

	msg := notify.BookingConfirmed(b)
	s.notifier.Notify(msg)
	if account := validators.NormalizeEmail(actor.Email); account != "" && account != b.Email {
		s.notifier.Notify(msg.CopyTo(account))
	}
	return b, nil
}

// GetBooking returns the booking if actor is its tutor or tutee.
func (s *Service) GetBooking(ctx context.Context, actor Actor, reference string) (*models.Booking, error) {
	return s.authorized(ctx, actor, reference)
}

func (s *Service) CancelBooking(ctx context.Context, actor Actor, reference string) (*models.Booking, error) {
	if _, err := s.authorized(ctx, actor, reference); err != nil {
		return nil, err
	}

	b, err := s.ledger.Cancel(ctx, reference, actor.UserID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, b.TutorID)
	return b, nil
}

func (s *Service) CompleteBooking(ctx context.Context, actor Actor, reference string) (*models.Booking, error) {
	if _, err := s.authorized(ctx, actor, reference); err != nil {
		return nil, err
	}

	b, err := s.ledger.Complete(ctx, reference, actor.UserID)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.ReviewInvite(b))
	return b, nil
}

// ListMyBookings returns the actor's bookings as tutor and as tutee, split into
// upcoming (soonest first) and past (most recent first).
func (s *Service) ListMyBookings(ctx context.Context, actor Actor) (*MyBookings, error) {
	if actor.UserID == "" {
		return nil, httperr.ErrUnauthorized("unauthenticated")
	}

	asTutor, err := s.ledger.ListByTutor(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	asTutee, err := s.ledger.ListByTutee(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	today := timezone.FormatDate(s.generator.Today())
	out := &MyBookings{
		Upcoming: make([]models.Booking, 0),
		Past:     make([]models.Booking, 0),
	}

	seen := make(map[string]bool, len(asTutor)+len(asTutee))
	for _, b := range append(asTutor, asTutee...) {
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true

		if domain.IsPast(&b, today) {
			out.Past = append(out.Past, b)
		} else {
			out.Upcoming = append(out.Upcoming, b)
		}
	}

	sort.SliceStable(out.Upcoming, func(i, j int) bool { return before(out.Upcoming[i], out.Upcoming[j]) })
	sort.SliceStable(out.Past, func(i, j int) bool { return before(out.Past[j], out.Past[i]) })
	return out, nil
}

// ======================================================
// HELPERS
// ======================================================

func (s *Service) authorized(ctx context.Context, actor Actor, reference string) (*models.Booking, error) {
	if actor.UserID == "" {
		return nil, httperr.ErrUnauthorized("unauthenticated")
	}

	b, err := s.ledger.Get(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !b.HasParty(actor.UserID) {
		return nil, httperr.ErrUnauthorized("not_a_party")
	}
	return b, nil
}

func (s *Service) invalidate(ctx context.Context, tutorID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, tutorID)
	}
}

func (s *Service) check(req SubmitRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	field, tag, ok := validators.FirstFailure(err)
	if !ok {
		return httperr.ErrValidation("invalid_request", "The booking request is invalid.")
	}

	label := fieldLabels[field]
	if label == "" {
		label = field
	}

	if tag == "required" {
		return httperr.ErrValidation("missing_"+field, fmt.Sprintf("%s is required.", label))
	}
	return httperr.ErrValidation("invalid_"+field, fmt.Sprintf("%s is invalid.", label))
}

func normalize(req *SubmitRequest) {
	req.TutorID = strings.TrimSpace(req.TutorID)
	req.Date = strings.TrimSpace(req.Date)
	req.SlotStart = strings.TrimSpace(req.SlotStart)
	req.SlotEnd = strings.TrimSpace(req.SlotEnd)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = validators.NormalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
}

func before(a, b models.Booking) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.SlotStart < b.SlotStart
}
