package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-queue/internal/api/dto"
	"github.com/spec-kit/support-queue/internal/service"
	apperrors "github.com/spec-kit/support-queue/pkg/util/errorutil"
)

// IssuesHandler manages customer-facing intake and booking endpoints.
type IssuesHandler struct {
	intake   *service.IntakeService
	booking  *service.BookingService
	dispatch *service.DispatchService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(intake *service.IntakeService, booking *service.BookingService, dispatch *service.DispatchService) *IssuesHandler {
	return &IssuesHandler{intake: intake, booking: booking, dispatch: dispatch}
}

// Submit POST /api/issues.
func (h *IssuesHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitIssueRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.Wrap(apperrors.NewValidationError("invalid payload", nil), err)
		}
	}

	res, err := h.intake.Submit(c.UserContext(), service.Submission{
		Name:        req.Name,
		Contact:     req.Contact,
		IssueType:   req.IssueType,
		Description: req.Description,
		IsUrgent:    req.IsUrgent,
		BookingDate: req.BookingDate,
		BookingSlot: req.BookingSlot,
	})
	if err != nil {
		return err
	}

	resp := dto.SubmitIssueResponse{
		Success: true,
		Issue:   issueResponse(res.Issue),
		State:   res.State,
		QueueInfo: dto.QueueInfoResponse{
			Path:      res.QueueInfo.Path,
			RiskLevel: res.QueueInfo.RiskLevel,
			Position:  res.QueueInfo.Position,
			Message:   res.QueueInfo.Message,
		},
		PreDiagnosis: dto.PreDiagnosisResponse{
			Checklist:  res.PreDiagnosis.Checklist,
			DocsNeeded: res.PreDiagnosis.DocsNeeded,
		},
	}
	if res.BookingError != nil {
		resp.BookingError = &dto.BookingErrorResponse{Code: res.BookingError.Code, Message: res.BookingError.Message}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Get GET /api/issues/:id.
func (h *IssuesHandler) Get(c *fiber.Ctx) error {
	issue, state, err := h.dispatch.Find(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.IssueResultResponse{Success: true, Issue: issueResponse(issue), State: state})
}

// Book POST /api/book.
func (h *IssuesHandler) Book(c *fiber.Ctx) error {
	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Wrap(apperrors.NewValidationError("invalid payload", nil), err)
	}
	res, err := h.booking.Book(c.UserContext(), service.BookingInput{
		ID:          req.ID,
		BookingDate: req.BookingDate,
		BookingSlot: req.BookingSlot,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.IssueResultResponse{Success: true, Issue: issueResponse(res.Issue), State: res.State})
}

// Availability POST /api/slots-availability.
func (h *IssuesHandler) Availability(c *fiber.Ctx) error {
	var req dto.AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Wrap(apperrors.NewValidationError("invalid payload", nil), err)
	}
	avail, err := h.booking.Availability(c.UserContext(), req.Date)
	if err != nil {
		return err
	}
	return c.JSON(dto.AvailabilityResponse{
		Date:         avail.Date,
		Availability: avail.Counts,
		Slots:        avail.Labels,
		Max:          avail.Max,
	})
}
