package dto

import (
	"time"

	"github.com/spec-kit/support-queue/internal/domain"
)

// SubmitIssueRequest payload. Every field is optional.
type SubmitIssueRequest struct {
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
	IsUrgent    bool   `json:"isUrgent"`
	BookingDate string `json:"bookingDate"`
	BookingSlot string `json:"bookingSlot"`
}

// BookRequest payload.
type BookRequest struct {
	ID          string `json:"id"`
	BookingDate string `json:"bookingDate"`
	BookingSlot string `json:"bookingSlot"`
}

// AvailabilityRequest payload.
type AvailabilityRequest struct {
	Date string `json:"date"`
}

// ServeRequest payload.
type ServeRequest struct {
	Queue string `json:"queue"`
}

// IssueResponse is the wire form of an issue.
type IssueResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Contact     string           `json:"contact"`
	IssueType   domain.IssueType `json:"issueType"`
	Description string           `json:"description"`
	Summary     string           `json:"summary"`
	IsUrgent    bool             `json:"isUrgent"`
	Path        domain.Path      `json:"path"`
	RiskLevel   domain.RiskLevel `json:"riskLevel"`
	CreatedAt   time.Time        `json:"createdAt"`
	BookingDate *string          `json:"bookingDate"`
	BookingSlot *string          `json:"bookingSlot"`
}

// QueueInfoResponse describes where a submission landed.
type QueueInfoResponse struct {
	Path      domain.Path      `json:"path"`
	RiskLevel domain.RiskLevel `json:"riskLevel"`
	Position  int              `json:"position"`
	Message   string           `json:"message"`
}

// PreDiagnosisResponse lists preparation items.
type PreDiagnosisResponse struct {
	Checklist  []string `json:"checklist"`
	DocsNeeded []string `json:"docsNeeded"`
}

// BookingErrorResponse explains why a submission-time booking failed.
type BookingErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SubmitIssueResponse is returned by POST /api/issues.
type SubmitIssueResponse struct {
	Success      bool                  `json:"success"`
	Issue        IssueResponse         `json:"issue"`
	State        domain.State          `json:"state"`
	QueueInfo    QueueInfoResponse     `json:"queueInfo"`
	PreDiagnosis PreDiagnosisResponse  `json:"preDiagnosis"`
	BookingError *BookingErrorResponse `json:"bookingError,omitempty"`
}

// IssueResultResponse wraps a single issue.
type IssueResultResponse struct {
	Success bool          `json:"success"`
	Issue   IssueResponse `json:"issue"`
	State   domain.State  `json:"state,omitempty"`
}

// IssueListResponse wraps a list of issues.
type IssueListResponse struct {
	Success bool            `json:"success"`
	Issues  []IssueResponse `json:"issues"`
}

// AvailabilityResponse is returned by POST /api/slots-availability.
type AvailabilityResponse struct {
	Date         string         `json:"date"`
	Availability map[string]int `json:"availability"`
	Slots        []string       `json:"slots"`
	Max          int            `json:"max"`
}

// QueuesResponse is returned by GET /api/queues.
type QueuesResponse struct {
	UrgentQueue   []IssueResponse `json:"urgentQueue"`
	NormalQueue   []IssueResponse `json:"normalQueue"`
	CurrentUrgent *IssueResponse  `json:"currentUrgent"`
	CurrentNormal *IssueResponse  `json:"currentNormal"`
}

// ServeResponse is returned by POST /api/serve.
type ServeResponse struct {
	Success bool           `json:"success"`
	Current *IssueResponse `json:"current"`
	Queue   domain.Lane    `json:"queue"`
}

// SuccessResponse is a bare acknowledgement.
type SuccessResponse struct {
	Success bool `json:"success"`
}
