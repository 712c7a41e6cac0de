package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-queue/internal/api/dto"
	"github.com/spec-kit/support-queue/internal/service"
	apperrors "github.com/spec-kit/support-queue/pkg/util/errorutil"
)

// QueuesHandler exposes staff-facing queue endpoints.
type QueuesHandler struct {
	dispatch *service.DispatchService
}

// NewQueuesHandler constructs handler.
func NewQueuesHandler(dispatch *service.DispatchService) *QueuesHandler {
	return &QueuesHandler{dispatch: dispatch}
}

// Snapshot GET /api/queues.
func (h *QueuesHandler) Snapshot(c *fiber.Ctx) error {
	snap := h.dispatch.Snapshot(c.UserContext())
	return c.JSON(dto.QueuesResponse{
		UrgentQueue:   issueResponses(snap.UrgentQueue),
		NormalQueue:   issueResponses(snap.NormalQueue),
		CurrentUrgent: optionalIssueResponse(snap.CurrentUrgent),
		CurrentNormal: optionalIssueResponse(snap.CurrentNormal),
	})
}

// Pending GET /api/pending.
func (h *QueuesHandler) Pending(c *fiber.Ctx) error {
	return c.JSON(dto.IssueListResponse{Success: true, Issues: issueResponses(h.dispatch.Pending(c.UserContext()))})
}

// Completed GET /api/completed.
func (h *QueuesHandler) Completed(c *fiber.Ctx) error {
	return c.JSON(dto.IssueListResponse{Success: true, Issues: issueResponses(h.dispatch.Completed(c.UserContext()))})
}

// Serve POST /api/serve.
func (h *QueuesHandler) Serve(c *fiber.Ctx) error {
	var req dto.ServeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Wrap(apperrors.NewValidationError("invalid payload", nil), err)
	}
	res, err := h.dispatch.ServeNext(c.UserContext(), req.Queue)
	if err != nil {
		return err
	}
	return c.JSON(dto.ServeResponse{
		Success: true,
		Current: optionalIssueResponse(res.Current),
		Queue:   res.Lane,
	})
}

// Reset POST /api/reset.
func (h *QueuesHandler) Reset(c *fiber.Ctx) error {
	h.dispatch.Reset(c.UserContext())
	return c.JSON(dto.SuccessResponse{Success: true})
}
