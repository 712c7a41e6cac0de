// Package queue holds the in-memory pending-booking set, the two serving
// lanes and the completed log for the support desk.
package queue

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/support-queue/internal/domain"
)

// DefaultSlotLabels are the bookable one-hour windows, lunch excluded.
var DefaultSlotLabels = []string{
	"09:00–10:00",
	"10:00–11:00",
	"11:00–12:00",
	"13:00–14:00",
	"14:00–15:00",
	"15:00–16:00",
	"16:00–17:00",
}

// DefaultMaxBookingsPerSlot applies when Options leaves the limit unset.
const DefaultMaxBookingsPerSlot = 3

// Options configures a Store.
type Options struct {
	MaxBookingsPerSlot int
	// RequireBookingBeforeQueueing holds normal-path issues in the pending
	// set until they are booked. When false they join the normal lane at once.
	RequireBookingBeforeQueueing bool
	SlotLabels                   []string
}

// Placement describes where Submit put an issue.
type Placement struct {
	State domain.State
	// Position is 1-based within the lane. Pending issues report the
	// position they would take in the normal lane if booked now.
	Position int
}

// BookingResult describes a successful Book call. Rescheduled is set when
// the issue already held a booking.
type BookingResult struct {
	Issue       domain.Issue
	Rescheduled bool
	State       domain.State
}

// ServeResult describes a ServeNext call.
type ServeResult struct {
	Lane      domain.Lane
	Current   *domain.Issue
	Completed *domain.Issue
}

// Snapshot is a read-only copy of both lanes and both serving slots.
type Snapshot struct {
	UrgentQueue   []domain.Issue
	NormalQueue   []domain.Issue
	CurrentUrgent *domain.Issue
	CurrentNormal *domain.Issue
}

// Store owns every issue after submission. One lock covers each public
// operation in full, so capacity checks and the booking they guard are atomic.
type Store struct {
	mu     sync.RWMutex
	opts   Options
	slots  map[string]struct{}
	logger *zap.Logger

	pending       []*domain.Issue
	urgent        []*domain.Issue
	normal        []*domain.Issue
	currentUrgent *domain.Issue
	currentNormal *domain.Issue
	completed     []*domain.Issue

	// states indexes every held issue by id.
	states map[string]domain.State
}

// NewStore creates an empty store.
func NewStore(opts Options, logger *zap.Logger) *Store {
	if opts.MaxBookingsPerSlot < 1 {
		opts.MaxBookingsPerSlot = DefaultMaxBookingsPerSlot
	}
	if len(opts.SlotLabels) == 0 {
		opts.SlotLabels = DefaultSlotLabels
	}
	opts.SlotLabels = append([]string{}, opts.SlotLabels...)
	slots := make(map[string]struct{}, len(opts.SlotLabels))
	for _, label := range opts.SlotLabels {
		slots[label] = struct{}{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		opts:   opts,
		slots:  slots,
		logger: logger,
		states: make(map[string]domain.State),
	}
}

// MaxBookingsPerSlot returns the configured per-slot capacity.
func (s *Store) MaxBookingsPerSlot() int {
	return s.opts.MaxBookingsPerSlot
}

// SlotLabels returns the bookable slot labels in order.
func (s *Store) SlotLabels() []string {
	return append([]string{}, s.opts.SlotLabels...)
}

// Submit takes ownership of a freshly created issue.
func (s *Store) Submit(issue *domain.Issue) (Placement, error) {
	if issue == nil || issue.ID == "" {
		return Placement{}, fmt.Errorf("%w: issue without id", domain.ErrInvalidSubmission)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.states[issue.ID]; exists {
		return Placement{}, fmt.Errorf("%w: duplicate issue id %s", domain.ErrInvalidSubmission, issue.ID)
	}

	var p Placement
	switch {
	case issue.Path == domain.PathCritical:
		s.urgent = append(s.urgent, issue)
		p = Placement{State: domain.StateUrgentQueued, Position: len(s.urgent)}
	case s.opts.RequireBookingBeforeQueueing:
		s.pending = append(s.pending, issue)
		p = Placement{State: domain.StatePendingBooking, Position: len(s.normal) + 1}
	default:
		s.normal = append(s.normal, issue)
		p = Placement{State: domain.StateNormalQueued, Position: len(s.normal)}
	}
	s.states[issue.ID] = p.State

	s.logger.Info("issue submitted",
		zap.String("issue_id", issue.ID),
		zap.String("state", string(p.State)),
		zap.Int("position", p.Position))
	return p, nil
}

// Book assigns or changes the booking of an issue that is pending, queued
// or currently being served. A pending issue moves to the tail of the
// normal lane; any other issue keeps its place.
func (s *Store) Book(id, date, slot string) (BookingResult, error) {
	if _, ok := s.slots[slot]; !ok {
		return BookingResult{}, fmt.Errorf("%w: unknown slot %q", domain.ErrInvalidSubmission, slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[id]
	if !ok || state == domain.StateCompleted {
		return BookingResult{}, fmt.Errorf("%w: %s", domain.ErrIssueNotFound, id)
	}
	issue, idx := s.locateLocked(id, state)

	if count := s.bookingCountLocked(date, slot, id); count >= s.opts.MaxBookingsPerSlot {
		s.logger.Info("slot full",
			zap.String("issue_id", id),
			zap.String("date", date),
			zap.String("slot", slot),
			zap.Int("count", count))
		return BookingResult{}, fmt.Errorf("%w: %s %s", domain.ErrSlotFull, date, slot)
	}

	res := BookingResult{Rescheduled: issue.BookingDate != nil, State: state}
	issue.SetBooking(date, slot)
	if state == domain.StatePendingBooking {
		s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
		s.normal = append(s.normal, issue)
		s.states[id] = domain.StateNormalQueued
		res.State = domain.StateNormalQueued
	}
	res.Issue = *issue

	s.logger.Info("issue booked",
		zap.String("issue_id", id),
		zap.String("date", date),
		zap.String("slot", slot),
		zap.Bool("rescheduled", res.Rescheduled))
	return res, nil
}

// ServeNext archives the lane's current issue, if any, and promotes the
// head of the lane. Current is nil when the lane was empty.
func (s *Store) ServeNext(lane domain.Lane) (ServeResult, error) {
	if _, err := domain.ParseLane(string(lane)); err != nil {
		return ServeResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	queue, current := &s.normal, &s.currentNormal
	if lane == domain.LaneUrgent {
		queue, current = &s.urgent, &s.currentUrgent
	}

	res := ServeResult{Lane: lane}
	if prev := *current; prev != nil {
		s.completed = append(s.completed, prev)
		s.states[prev.ID] = domain.StateCompleted
		res.Completed = copyIssue(prev)
	}

	*current = nil
	if len(*queue) > 0 {
		next := (*queue)[0]
		(*queue)[0] = nil
		*queue = (*queue)[1:]
		*current = next
		s.states[next.ID] = lane.CurrentState()
		res.Current = copyIssue(next)
	}

	fields := []zap.Field{zap.String("lane", string(lane)), zap.Int("waiting", len(*queue))}
	if res.Current != nil {
		fields = append(fields, zap.String("issue_id", res.Current.ID))
	}
	s.logger.Info("serve next", fields...)
	return res, nil
}

// Reset empties every container.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	s.urgent = nil
	s.normal = nil
	s.currentUrgent = nil
	s.currentNormal = nil
	s.completed = nil
	s.states = make(map[string]domain.State)
	s.logger.Info("queues reset")
}

// Snapshot copies both lanes and both serving slots.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		UrgentQueue:   copyIssues(s.urgent),
		NormalQueue:   copyIssues(s.normal),
		CurrentUrgent: copyIssue(s.currentUrgent),
		CurrentNormal: copyIssue(s.currentNormal),
	}
}

// Pending copies the issues awaiting a booking, oldest first.
func (s *Store) Pending() []domain.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIssues(s.pending)
}

// Completed copies the completed log in archival order.
func (s *Store) Completed() []domain.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyIssues(s.completed)
}

// Find returns a copy of the issue and its current state.
func (s *Store) Find(id string) (domain.Issue, domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[id]
	if !ok {
		return domain.Issue{}, "", fmt.Errorf("%w: %s", domain.ErrIssueNotFound, id)
	}
	issue, _ := s.locateLocked(id, state)
	return *issue, state, nil
}

// locateLocked returns the issue and, for slice containers, its index.
func (s *Store) locateLocked(id string, state domain.State) (*domain.Issue, int) {
	switch state {
	case domain.StateUrgentCurrent:
		return s.currentUrgent, -1
	case domain.StateNormalCurrent:
		return s.currentNormal, -1
	}
	var list []*domain.Issue
	switch state {
	case domain.StatePendingBooking:
		list = s.pending
	case domain.StateUrgentQueued:
		list = s.urgent
	case domain.StateNormalQueued:
		list = s.normal
	case domain.StateCompleted:
		list = s.completed
	}
	for i, issue := range list {
		if issue.ID == id {
			return issue, i
		}
	}
	// states and containers are updated together under the lock.
	panic(fmt.Sprintf("queue: index out of sync for issue %s in %s", id, state))
}

func (s *Store) eachLocked(fn func(*domain.Issue)) {
	for _, list := range [][]*domain.Issue{s.pending, s.urgent, s.normal, s.completed} {
		for _, issue := range list {
			fn(issue)
		}
	}
	if s.currentUrgent != nil {
		fn(s.currentUrgent)
	}
	if s.currentNormal != nil {
		fn(s.currentNormal)
	}
}

func copyIssue(issue *domain.Issue) *domain.Issue {
	if issue == nil {
		return nil
	}
	c := *issue
	return &c
}

func copyIssues(list []*domain.Issue) []domain.Issue {
	out := make([]domain.Issue, 0, len(list))
	for _, issue := range list {
		out = append(out, *issue)
	}
	return out
}
