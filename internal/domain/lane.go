package domain

import "fmt"

// Lane identifies one of the two serving queues.
type Lane string

const (
	LaneUrgent Lane = "urgent"
	LaneNormal Lane = "normal"
)

// ParseLane validates a lane name supplied by staff tooling.
func ParseLane(name string) (Lane, error) {
	switch Lane(name) {
	case LaneUrgent, LaneNormal:
		return Lane(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLane, name)
	}
}

// State is the position of an issue in the queue workflow.
type State string

const (
	StatePendingBooking State = "PENDING_BOOKING"
	StateUrgentQueued   State = "URGENT_QUEUED"
	StateNormalQueued   State = "NORMAL_QUEUED"
	StateUrgentCurrent  State = "URGENT_CURRENT"
	StateNormalCurrent  State = "NORMAL_CURRENT"
	StateCompleted      State = "COMPLETED"
)

// QueuedState returns the waiting state for a lane.
func (l Lane) QueuedState() State {
	if l == LaneUrgent {
		return StateUrgentQueued
	}
	return StateNormalQueued
}

// CurrentState returns the serving state for a lane.
func (l Lane) CurrentState() State {
	if l == LaneUrgent {
		return StateUrgentCurrent
	}
	return StateNormalCurrent
}
