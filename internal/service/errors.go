package service

import (
	"errors"
	"net/http"

	"github.com/spec-kit/support-queue/internal/domain"
	apperrors "github.com/spec-kit/support-queue/pkg/util/errorutil"
)

// mapQueueError converts domain sentinels into HTTP-aware domain errors.
func mapQueueError(err error, details map[string]any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrIssueNotFound):
		return apperrors.Wrap(apperrors.NewDomainError("NOT_FOUND",
			"Issue not found in queues or current sessions", http.StatusNotFound, details), err)
	case errors.Is(err, domain.ErrSlotFull):
		return apperrors.Wrap(apperrors.NewSlotFull(details), err)
	case errors.Is(err, domain.ErrInvalidLane):
		lane, _ := details["queue"].(string)
		return apperrors.Wrap(apperrors.NewInvalidLane(lane), err)
	case errors.Is(err, domain.ErrInvalidSubmission):
		return apperrors.Wrap(apperrors.NewValidationError(err.Error(), details), err)
	default:
		return apperrors.NewInternalError(err)
	}
}
