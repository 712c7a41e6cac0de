package handlers

import (
	"github.com/spec-kit/support-queue/internal/api/dto"
	"github.com/spec-kit/support-queue/internal/domain"
)

func issueResponse(issue domain.Issue) dto.IssueResponse {
	return dto.IssueResponse{
		ID:          issue.ID,
		Name:        issue.Name,
		Contact:     issue.Contact,
		IssueType:   issue.IssueType,
		Description: issue.Description,
		Summary:     issue.Summary,
		IsUrgent:    issue.IsUrgent,
		Path:        issue.Path,
		RiskLevel:   issue.RiskLevel,
		CreatedAt:   issue.CreatedAt,
		BookingDate: issue.BookingDate,
		BookingSlot: issue.BookingSlot,
	}
}

func optionalIssueResponse(issue *domain.Issue) *dto.IssueResponse {
	if issue == nil {
		return nil
	}
	resp := issueResponse(*issue)
	return &resp
}

func issueResponses(issues []domain.Issue) []dto.IssueResponse {
	resp := make([]dto.IssueResponse, 0, len(issues))
	for _, issue := range issues {
		resp = append(resp, issueResponse(issue))
	}
	return resp
}
