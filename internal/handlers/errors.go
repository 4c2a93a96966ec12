package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/services"
	"github.com/studyhub/backend/internal/voting"
)

// serviceError maps service sentinel errors onto HTTP statuses. Unknown
// errors become a generic 500 so internals never leak to clients.
func serviceError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrNoteNotFound),
		errors.Is(err, services.ErrReportNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrConversationNotFound),
		errors.Is(err, voting.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrBanned),
		errors.Is(err, services.ErrNotModerator),
		errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrNotParticipant):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrReportClosed),
		errors.Is(err, services.ErrRequestClosed),
		errors.Is(err, services.ErrPendingRoleRequest),
		errors.Is(err, services.ErrCourseExists),
		errors.Is(err, services.ErrNoteNotReviewable):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, services.ErrInvalidAction),
		errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrRoleRequired),
		errors.Is(err, services.ErrCourseNameRequired),
		errors.Is(err, services.ErrPostFields),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrNoteFields),
		errors.Is(err, services.ErrBodyRequired),
		errors.Is(err, services.ErrSelfConversation),
		errors.Is(err, services.ErrSyncFields),
		errors.Is(err, voting.ErrInvalidChoice):
		status = fiber.StatusBadRequest
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}
