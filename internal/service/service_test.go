package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-queue/internal/config"
	"github.com/spec-kit/support-queue/internal/domain"
	"github.com/spec-kit/support-queue/internal/events"
	"github.com/spec-kit/support-queue/internal/observability"
	"github.com/spec-kit/support-queue/internal/queue"
	"github.com/spec-kit/support-queue/internal/triage"
	apperrors "github.com/spec-kit/support-queue/pkg/util/errorutil"
)

const (
	testDate = "2024-06-01"
	nineAM   = "09:00–10:00"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingBroadcaster) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store     *queue.Store
	intake    *IntakeService
	booking   *BookingService
	dispatch  *DispatchService
	metrics   *observability.Metrics
	broadcast *recordingBroadcaster
}

func newFixture(t *testing.T, maxPerSlot int) *fixture {
	t.Helper()
	logger := zap.NewNop()
	store := queue.NewStore(queue.Options{MaxBookingsPerSlot: maxPerSlot, RequireBookingBeforeQueueing: true}, logger)
	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()
	rec := &recordingBroadcaster{}
	NewNotificationService(dispatcher, rec, logger, config.NotificationConfig{EmailFrom: "noreply@example.com"}).RegisterHandlers()

	booking := NewBookingService(BookingDependencies{Store: store, Dispatcher: dispatcher, Metrics: metrics, Logger: logger})
	factory := NewIssueFactory(triage.NewEngine(triage.Options{}, logger))
	return &fixture{
		store: store,
		intake: NewIntakeService(IntakeDependencies{
			Factory: factory, Store: store, Booking: booking, Dispatcher: dispatcher, Metrics: metrics, Logger: logger,
		}),
		booking:   booking,
		dispatch:  NewDispatchService(DispatchDependencies{Store: store, Dispatcher: dispatcher, Metrics: metrics, Logger: logger}),
		metrics:   metrics,
		broadcast: rec,
	}
}

func TestFactoryDefaultsAndSummary(t *testing.T) {
	f := NewIssueFactory(triage.NewEngine(triage.Options{}, nil))
	f.newID = func() string { return "fixed-id" }
	f.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }

	issue, res, err := f.Create(Submission{})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", issue.ID)
	assert.Equal(t, "Anonymous", issue.Name)
	assert.Equal(t, domain.IssueTypeOthers, issue.IssueType)
	assert.Equal(t, "No description provided.", issue.Summary)
	assert.Equal(t, domain.PathNormal, issue.Path)
	assert.Nil(t, issue.BookingDate)
	assert.Equal(t, res.Checklist[0], "Write down your main problem in 1–2 lines")
	assert.Equal(t, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), issue.CreatedAt)
}

func TestMakeSummaryTruncates(t *testing.T) {
	exact := strings.Repeat("a", 140)
	assert.Equal(t, exact, makeSummary(exact))

	long := strings.Repeat("é", 200)
	got := makeSummary(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 140, len([]rune(got)))
}

func TestFactoryRejectsInvalidText(t *testing.T) {
	f := NewIssueFactory(triage.NewEngine(triage.Options{}, nil))
	_, _, err := f.Create(Submission{Description: string([]byte{0xff, 0xfe})})
	assert.ErrorIs(t, err, domain.ErrInvalidSubmission)
}

func TestEndToEndScenario(t *testing.T) {
	fx := newFixture(t, 2)
	ctx := context.Background()

	critical, err := fx.intake.Submit(ctx, Submission{IssueType: "Lost card", Description: "I lost my wallet"})
	require.NoError(t, err)
	assert.Equal(t, domain.PathCritical, critical.QueueInfo.Path)
	assert.Equal(t, domain.StateUrgentQueued, critical.State)
	assert.Equal(t, 1, critical.QueueInfo.Position)
	assert.Equal(t, messageCritical, critical.QueueInfo.Message)
	assert.Nil(t, critical.Issue.BookingDate)

	normal, err := fx.intake.Submit(ctx, Submission{IssueType: "Others", Description: "question about fees"})
	require.NoError(t, err)
	assert.Equal(t, domain.PathNormal, normal.QueueInfo.Path)
	assert.Equal(t, domain.StatePendingBooking, normal.State)
	assert.Equal(t, messageNormal, normal.QueueInfo.Message)

	snap := fx.dispatch.Snapshot(ctx)
	require.Len(t, snap.UrgentQueue, 1)
	assert.Equal(t, critical.Issue.ID, snap.UrgentQueue[0].ID)
	assert.Empty(t, snap.NormalQueue)
	require.Len(t, fx.dispatch.Pending(ctx), 1)

	booked, err := fx.booking.Book(ctx, BookingInput{ID: normal.Issue.ID, BookingDate: testDate, BookingSlot: nineAM})
	require.NoError(t, err)
	assert.False(t, booked.Rescheduled)

	snap = fx.dispatch.Snapshot(ctx)
	require.Len(t, snap.NormalQueue, 1)
	assert.Equal(t, normal.Issue.ID, snap.NormalQueue[0].ID)
	assert.Equal(t, testDate, *snap.NormalQueue[0].BookingDate)
	assert.Equal(t, nineAM, *snap.NormalQueue[0].BookingSlot)

	assert.Equal(t, []events.EventType{
		events.EventIssueSubmitted,
		events.EventIssueSubmitted,
		events.EventIssueBooked,
	}, fx.broadcast.types())
}

func TestSubmitHighRiskNormalMessage(t *testing.T) {
	fx := newFixture(t, 2)
	res, err := fx.intake.Submit(context.Background(), Submission{Description: "fees", IsUrgent: true})
	require.NoError(t, err)
	assert.Equal(t, domain.PathNormal, res.QueueInfo.Path)
	assert.Equal(t, domain.RiskHigh, res.QueueInfo.RiskLevel)
	assert.Equal(t, messageNormalHigh, res.QueueInfo.Message)
}

func TestSubmitWithBooking(t *testing.T) {
	fx := newFixture(t, 1)
	ctx := context.Background()

	first, err := fx.intake.Submit(ctx, Submission{Description: "fees", BookingDate: testDate, BookingSlot: nineAM})
	require.NoError(t, err)
	assert.Nil(t, first.BookingError)
	assert.Equal(t, domain.StateNormalQueued, first.State)
	require.NotNil(t, first.Issue.BookingSlot)

	second, err := fx.intake.Submit(ctx, Submission{Description: "fees", BookingDate: testDate, BookingSlot: nineAM})
	require.NoError(t, err)
	require.NotNil(t, second.BookingError)
	assert.Equal(t, "SLOT_FULL", second.BookingError.Code)
	assert.Equal(t, domain.StatePendingBooking, second.State)
	assert.Len(t, fx.dispatch.Pending(ctx), 1)
	assert.EqualValues(t, 1, fx.metrics.Snapshot().Queue["slot_full"])
}

func TestSubmitCriticalIgnoresBookingFields(t *testing.T) {
	fx := newFixture(t, 2)
	res, err := fx.intake.Submit(context.Background(), Submission{IssueType: "Stolen card", BookingDate: testDate, BookingSlot: nineAM})
	require.NoError(t, err)
	assert.Equal(t, domain.StateUrgentQueued, res.State)
	assert.Nil(t, res.Issue.BookingDate)
	assert.Zero(t, fx.store.Availability(testDate).Counts[nineAM])
}

func TestBookErrors(t *testing.T) {
	fx := newFixture(t, 2)
	ctx := context.Background()

	cases := []struct {
		name   string
		in     BookingInput
		code   string
		status int
	}{
		{"missing fields", BookingInput{ID: "x"}, "VALIDATION_FAILED", http.StatusBadRequest},
		{"bad date", BookingInput{ID: "x", BookingDate: "01/06/2024", BookingSlot: nineAM}, "VALIDATION_FAILED", http.StatusBadRequest},
		{"not found", BookingInput{ID: "x", BookingDate: testDate, BookingSlot: nineAM}, "NOT_FOUND", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.booking.Book(ctx, tc.in)
			de := apperrors.ToDomainError(err)
			require.NotNil(t, de)
			assert.Equal(t, tc.code, de.Code)
			assert.Equal(t, tc.status, de.HTTPStatus)
		})
	}

	_, err := fx.booking.Book(ctx, BookingInput{ID: "x", BookingDate: testDate, BookingSlot: nineAM})
	assert.True(t, errors.Is(err, domain.ErrIssueNotFound))
}

func TestRescheduleEmitsRescheduledEvent(t *testing.T) {
	fx := newFixture(t, 2)
	ctx := context.Background()
	sub, err := fx.intake.Submit(ctx, Submission{Description: "fees"})
	require.NoError(t, err)
	_, err = fx.booking.Book(ctx, BookingInput{ID: sub.Issue.ID, BookingDate: testDate, BookingSlot: nineAM})
	require.NoError(t, err)
	res, err := fx.booking.Book(ctx, BookingInput{ID: sub.Issue.ID, BookingDate: testDate, BookingSlot: nineAM})
	require.NoError(t, err)
	assert.True(t, res.Rescheduled)

	types := fx.broadcast.types()
	assert.Equal(t, events.EventIssueRescheduled, types[len(types)-1])
}

func TestAvailabilityValidation(t *testing.T) {
	fx := newFixture(t, 2)
	_, err := fx.booking.Availability(context.Background(), "")
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	avail, err := fx.booking.Availability(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, 2, avail.Max)
	assert.Len(t, avail.Counts, len(queue.DefaultSlotLabels))
}

func TestServeNextFlow(t *testing.T) {
	fx := newFixture(t, 2)
	ctx := context.Background()
	a, err := fx.intake.Submit(ctx, Submission{IssueType: "Account locked"})
	require.NoError(t, err)
	b, err := fx.intake.Submit(ctx, Submission{Description: "scam message"})
	require.NoError(t, err)

	res, err := fx.dispatch.ServeNext(ctx, "urgent")
	require.NoError(t, err)
	assert.Equal(t, a.Issue.ID, res.Current.ID)
	res, err = fx.dispatch.ServeNext(ctx, "urgent")
	require.NoError(t, err)
	assert.Equal(t, b.Issue.ID, res.Current.ID)
	assert.Equal(t, a.Issue.ID, res.Completed.ID)

	_, state, err := fx.dispatch.Find(ctx, a.Issue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, state)
	require.Len(t, fx.dispatch.Completed(ctx), 1)

	snap := fx.metrics.Snapshot()
	assert.EqualValues(t, 2, snap.Queue["served_urgent"])
	assert.EqualValues(t, 1, snap.Queue["completed_urgent"])
}

func TestServeNextInvalidLane(t *testing.T) {
	fx := newFixture(t, 2)
	_, err := fx.dispatch.ServeNext(context.Background(), "vip")
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "INVALID_LANE", de.Code)
	assert.Equal(t, "vip", de.Details["queue"])
	assert.ErrorIs(t, err, domain.ErrInvalidLane)
}

func TestResetPublishesEvent(t *testing.T) {
	fx := newFixture(t, 2)
	ctx := context.Background()
	_, err := fx.intake.Submit(ctx, Submission{Description: "fees"})
	require.NoError(t, err)

	fx.dispatch.Reset(ctx)
	assert.Empty(t, fx.dispatch.Pending(ctx))
	types := fx.broadcast.types()
	assert.Equal(t, events.EventQueuesReset, types[len(types)-1])

	_, _, err = fx.dispatch.Find(ctx, "anything")
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
