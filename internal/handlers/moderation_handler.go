package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/services"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) ReportUser(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ReportUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.moderationService.FileUserReport(orgID, actorID, req.ReportedUserID, req.Issue)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ModerationHandler) ReportNote(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	noteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid note ID")
	}

	var req dto.ReportNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.moderationService.FileNoteReport(orgID, actorID, noteID, req.Reason)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ModerationHandler) ListUserReports(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	reports, err := h.moderationService.ListUserReports(orgID, actorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports, "total": len(reports)})
}

func (h *ModerationHandler) ListNoteReports(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	reports, err := h.moderationService.ListNoteReports(orgID, actorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports, "total": len(reports)})
}

// ResolveUserReport applies the moderator's verdict on a user report.
// Accepting bans the reported user.
func (h *ModerationHandler) ResolveUserReport(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	status, err := h.moderationService.ResolveUserReport(actorID, reportID, req.Action)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}

// ResolveNoteReport applies the moderator's verdict on a note report.
// Accepting removes the note from circulation.
func (h *ModerationHandler) ResolveNoteReport(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	status, err := h.moderationService.ResolveNoteReport(actorID, reportID, req.Action)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}

func (h *ModerationHandler) RequestRole(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.RoleRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	request, err := h.moderationService.RequestRole(orgID, actorID, req.Role)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func (h *ModerationHandler) ListRoleRequests(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	requests, err := h.moderationService.ListRoleRequests(orgID, actorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests, "total": len(requests)})
}

// DecideRoleRequest approves or rejects a pending role request.
// Approval also changes the requester's role.
func (h *ModerationHandler) DecideRoleRequest(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid request ID")
	}

	var req dto.DecideRoleRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	status, err := h.moderationService.DecideRoleRequest(actorID, requestID, req.Decision)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}
