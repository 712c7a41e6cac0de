package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-queue/internal/domain"
	"github.com/spec-kit/support-queue/internal/events"
	"github.com/spec-kit/support-queue/internal/observability"
	"github.com/spec-kit/support-queue/internal/queue"
	apperrors "github.com/spec-kit/support-queue/pkg/util/errorutil"
)

const (
	messageCritical   = "You have been placed in the Critical Path queue."
	messageNormalHigh = "You have been placed in the Normal Path (High Priority). Please select a time slot."
	messageNormal     = "You have been placed in the Normal Path. Please select a time slot."
)

// IntakeService accepts customer submissions.
type IntakeService struct {
	factory    *IssueFactory
	store      *queue.Store
	booking    *BookingService
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// IntakeDependencies bundles collaborators for the intake service.
type IntakeDependencies struct {
	Factory    *IssueFactory
	Store      *queue.Store
	Booking    *BookingService
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// QueueInfo summarises where a submission landed.
type QueueInfo struct {
	Path      domain.Path
	RiskLevel domain.RiskLevel
	Position  int
	Message   string
}

// PreDiagnosis lists what the customer should prepare.
type PreDiagnosis struct {
	Checklist  []string
	DocsNeeded []string
}

// SubmitResult is returned for every accepted submission.
type SubmitResult struct {
	Issue        domain.Issue
	State        domain.State
	QueueInfo    QueueInfo
	PreDiagnosis PreDiagnosis
	// BookingError is set when a booking sent with the submission was
	// rejected; the issue then stays pending.
	BookingError *apperrors.DomainError
}

// NewIntakeService creates the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeService{
		factory:    deps.Factory,
		store:      deps.Store,
		booking:    deps.Booking,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Submit triages a submission and hands the issue to the store. A
// normal-path submission carrying both booking fields is booked at once.
func (s *IntakeService) Submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
	issue, triaged, err := s.factory.Create(sub)
	if err != nil {
		return nil, mapQueueError(err, nil)
	}

	placement, err := s.store.Submit(issue)
	if err != nil {
		return nil, mapQueueError(err, map[string]any{"issue_id": issue.ID})
	}
	s.metrics.IncQueue("submitted_" + string(issue.Path))
	publishEvent(ctx, s.dispatcher, domain.ActorCustomer, events.EventIssueSubmitted, issue.ID, events.IssueSubmittedPayload{
		IssueType: issue.IssueType,
		Path:      issue.Path,
		RiskLevel: issue.RiskLevel,
		State:     placement.State,
		Position:  placement.Position,
	})

	res := &SubmitResult{
		Issue: *issue,
		State: placement.State,
		QueueInfo: QueueInfo{
			Path:      issue.Path,
			RiskLevel: issue.RiskLevel,
			Position:  placement.Position,
			Message:   queueMessage(issue.Path, issue.RiskLevel),
		},
		PreDiagnosis: PreDiagnosis{
			Checklist:  triaged.Checklist,
			DocsNeeded: triaged.DocsNeeded,
		},
	}

	if issue.Path == domain.PathNormal && sub.BookingDate != "" && sub.BookingSlot != "" && s.booking != nil {
		booked, err := s.booking.Book(ctx, BookingInput{ID: issue.ID, BookingDate: sub.BookingDate, BookingSlot: sub.BookingSlot})
		if err != nil {
			res.BookingError = apperrors.ToDomainError(err)
			s.logger.Info("booking with submission rejected",
				zap.String("issue_id", issue.ID),
				zap.String("code", res.BookingError.Code))
			return res, nil
		}
		res.Issue = booked.Issue
		res.State = booked.State
	}
	return res, nil
}

func queueMessage(path domain.Path, risk domain.RiskLevel) string {
	switch {
	case path == domain.PathCritical:
		return messageCritical
	case risk == domain.RiskHigh:
		return messageNormalHigh
	default:
		return messageNormal
	}
}
