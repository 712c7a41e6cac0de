package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-queue/internal/domain"
	"github.com/spec-kit/support-queue/internal/events"
	"github.com/spec-kit/support-queue/internal/observability"
	"github.com/spec-kit/support-queue/internal/queue"
)

// DispatchService is the staff-facing side of the store: serving,
// resetting and read views.
type DispatchService struct {
	store      *queue.Store
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// DispatchDependencies bundles collaborators for the dispatch service.
type DispatchDependencies struct {
	Store      *queue.Store
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewDispatchService creates the service.
func NewDispatchService(deps DispatchDependencies) *DispatchService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DispatchService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// ServeNext completes the lane's current issue and serves the next one.
func (s *DispatchService) ServeNext(ctx context.Context, laneName string) (queue.ServeResult, error) {
	lane, err := domain.ParseLane(laneName)
	if err != nil {
		return queue.ServeResult{}, mapQueueError(err, map[string]any{"queue": laneName})
	}
	res, err := s.store.ServeNext(lane)
	if err != nil {
		return queue.ServeResult{}, mapQueueError(err, map[string]any{"queue": laneName})
	}

	payload := events.IssueLanePayload{Lane: lane}
	if res.Completed != nil {
		s.metrics.IncQueue("completed_" + string(lane))
		publishEvent(ctx, s.dispatcher, domain.ActorStaff, events.EventIssueCompleted, res.Completed.ID, payload)
	}
	if res.Current != nil {
		s.metrics.IncQueue("served_" + string(lane))
		publishEvent(ctx, s.dispatcher, domain.ActorStaff, events.EventIssueServed, res.Current.ID, payload)
	}
	return res, nil
}

// Reset clears every queue.
func (s *DispatchService) Reset(ctx context.Context) {
	s.store.Reset()
	s.metrics.IncQueue("reset")
	publishEvent(ctx, s.dispatcher, domain.ActorStaff, events.EventQueuesReset, "", nil)
}

// Snapshot returns both lanes and both serving slots.
func (s *DispatchService) Snapshot(ctx context.Context) queue.Snapshot {
	return s.store.Snapshot()
}

// Pending returns issues still waiting for a booking.
func (s *DispatchService) Pending(ctx context.Context) []domain.Issue {
	return s.store.Pending()
}

// Completed returns the completed log.
func (s *DispatchService) Completed(ctx context.Context) []domain.Issue {
	return s.store.Completed()
}

// Find returns one issue with its workflow state.
func (s *DispatchService) Find(ctx context.Context, id string) (domain.Issue, domain.State, error) {
	issue, state, err := s.store.Find(id)
	if err != nil {
		return domain.Issue{}, "", mapQueueError(err, map[string]any{"issue_id": id})
	}
	return issue, state, nil
}
