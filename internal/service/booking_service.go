package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-queue/internal/domain"
	"github.com/spec-kit/support-queue/internal/events"
	"github.com/spec-kit/support-queue/internal/observability"
	"github.com/spec-kit/support-queue/internal/queue"
	apperrors "github.com/spec-kit/support-queue/pkg/util/errorutil"
)

const bookingDateLayout = "2006-01-02"

// BookingService books and reschedules normal-lane appointments.
type BookingService struct {
	store      *queue.Store
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// BookingDependencies bundles collaborators for the booking service.
type BookingDependencies struct {
	Store      *queue.Store
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// BookingInput identifies the issue and the requested slot.
type BookingInput struct {
	ID          string
	BookingDate string
	BookingSlot string
}

// NewBookingService creates the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Book assigns a slot to a pending issue or reschedules a queued or
// current one.
func (s *BookingService) Book(ctx context.Context, in BookingInput) (queue.BookingResult, error) {
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" || in.BookingDate == "" || in.BookingSlot == "" {
		return queue.BookingResult{}, apperrors.NewValidationError("id, bookingDate and bookingSlot are required", nil)
	}
	if err := validateDate(in.BookingDate); err != nil {
		return queue.BookingResult{}, err
	}

	details := map[string]any{"issue_id": in.ID, "booking_date": in.BookingDate, "booking_slot": in.BookingSlot}
	res, err := s.store.Book(in.ID, in.BookingDate, in.BookingSlot)
	if err != nil {
		if errors.Is(err, domain.ErrSlotFull) {
			s.metrics.IncQueue("slot_full")
		}
		return queue.BookingResult{}, mapQueueError(err, details)
	}

	eventType := events.EventIssueBooked
	if res.Rescheduled {
		eventType = events.EventIssueRescheduled
	}
	s.metrics.IncQueue(string(eventType))
	publishEvent(ctx, s.dispatcher, domain.ActorCustomer, eventType, in.ID, events.IssueBookedPayload{
		BookingDate: in.BookingDate,
		BookingSlot: in.BookingSlot,
		State:       res.State,
	})
	return res, nil
}

// Availability returns per-slot booking counts for date.
func (s *BookingService) Availability(ctx context.Context, date string) (queue.SlotAvailability, error) {
	if date == "" {
		return queue.SlotAvailability{}, apperrors.NewValidationError("Date required", nil)
	}
	if err := validateDate(date); err != nil {
		return queue.SlotAvailability{}, err
	}
	return s.store.Availability(date), nil
}

func validateDate(date string) error {
	if _, err := time.Parse(bookingDateLayout, date); err != nil {
		return apperrors.Wrap(apperrors.NewValidationError("date must use YYYY-MM-DD", map[string]any{"date": date}), err)
	}
	return nil
}
