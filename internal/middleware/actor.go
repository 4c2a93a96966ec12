package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/services"
)

// ActorResolver maps the authenticated external identity onto the
// local user row and stores the internal id in locals. Runs after
// SessionProtected; accounts that never synced get a 401.
func ActorResolver(gate *services.AuthorizationGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		externalID, err := org.GetExternalUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		user, err := gate.ActorByExternalID(externalID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Account not registered",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to resolve account",
			})
		}

		c.Locals("actor_id", user.ID)
		return c.Next()
	}
}

// ModeratorRequired gates moderation endpoints. Runs after ActorResolver.
func ModeratorRequired(gate *services.AuthorizationGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := org.GetActorID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if _, err := gate.RequireModerator(actorID); err != nil {
			if errors.Is(err, services.ErrNotModerator) || errors.Is(err, services.ErrBanned) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Moderator access required",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return c.Next()
	}
}
