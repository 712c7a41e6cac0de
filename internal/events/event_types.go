package events

import (
	"time"

	"github.com/spec-kit/support-queue/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueSubmitted   EventType = "issue_submitted"
	EventIssueBooked      EventType = "issue_booked"
	EventIssueRescheduled EventType = "issue_rescheduled"
	EventIssueServed      EventType = "issue_served"
	EventIssueCompleted   EventType = "issue_completed"
	EventQueuesReset      EventType = "queues_reset"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type domain.ActorType `json:"type"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	IssueID   string      `json:"issue_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IssueSubmittedPayload payload.
type IssueSubmittedPayload struct {
	IssueType domain.IssueType `json:"issue_type"`
	Path      domain.Path      `json:"path"`
	RiskLevel domain.RiskLevel `json:"risk_level"`
	State     domain.State     `json:"state"`
	Position  int              `json:"position"`
}

// IssueBookedPayload payload, shared by booked and rescheduled events.
type IssueBookedPayload struct {
	BookingDate string       `json:"booking_date"`
	BookingSlot string       `json:"booking_slot"`
	State       domain.State `json:"state"`
}

// IssueLanePayload payload for served and completed events.
type IssueLanePayload struct {
	Lane domain.Lane `json:"lane"`
}
