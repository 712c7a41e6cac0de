package service

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/spec-kit/support-queue/internal/domain"
	"github.com/spec-kit/support-queue/internal/triage"
)

const (
	defaultName     = "Anonymous"
	emptySummary    = "No description provided."
	summaryLimit    = 140
	summaryEllipsis = "..."
)

// Submission is the customer-supplied intake form. Every field is optional.
type Submission struct {
	Name        string
	Contact     string
	IssueType   string
	Description string
	IsUrgent    bool
	BookingDate string
	BookingSlot string
}

// IssueFactory turns submissions into triaged issues.
type IssueFactory struct {
	engine *triage.Engine
	newID  func() string
	now    func() time.Time
}

// NewIssueFactory constructs a factory using random UUIDs and wall-clock time.
func NewIssueFactory(engine *triage.Engine) *IssueFactory {
	return &IssueFactory{engine: engine, newID: uuid.NewString, now: time.Now}
}

// Create validates the submission, fills defaults and triages it. The
// returned issue has no booking; bookings go through the store.
func (f *IssueFactory) Create(sub Submission) (*domain.Issue, triage.Result, error) {
	for field, val := range map[string]string{
		"name":        sub.Name,
		"contact":     sub.Contact,
		"issueType":   sub.IssueType,
		"description": sub.Description,
	} {
		if !utf8.ValidString(val) {
			return nil, triage.Result{}, fmt.Errorf("%w: %s is not valid text", domain.ErrInvalidSubmission, field)
		}
	}

	issueType := domain.IssueType(sub.IssueType)
	if issueType == "" {
		issueType = domain.IssueTypeOthers
	}
	name := sub.Name
	if name == "" {
		name = defaultName
	}

	result := f.engine.Triage(issueType, sub.Description, sub.IsUrgent)
	issue := &domain.Issue{
		ID:          f.newID(),
		Name:        name,
		Contact:     sub.Contact,
		IssueType:   issueType,
		Description: sub.Description,
		Summary:     makeSummary(sub.Description),
		IsUrgent:    sub.IsUrgent,
		Path:        result.Path,
		RiskLevel:   result.RiskLevel,
		CreatedAt:   f.now().UTC(),
	}
	return issue, result, nil
}

func makeSummary(description string) string {
	if description == "" {
		return emptySummary
	}
	if utf8.RuneCountInString(description) <= summaryLimit {
		return description
	}
	runes := []rune(description)
	return string(runes[:summaryLimit-len(summaryEllipsis)]) + summaryEllipsis
}
