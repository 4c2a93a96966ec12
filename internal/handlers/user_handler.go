package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/services"
)

type UserHandler struct {
	identityService *services.IdentityService
}

func NewUserHandler(identityService *services.IdentityService) *UserHandler {
	return &UserHandler{identityService: identityService}
}

// Sync upserts the local account from the verified session token. The
// frontend calls it right after login; the body may fill in fields the
// provider token omits.
func (h *UserHandler) Sync(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	externalID, err := org.GetExternalUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SyncUserRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return badRequest(c, "Invalid request body")
	}

	email, name := req.Email, req.Name
	if token, ok := c.Locals("user").(*jwt.Token); ok {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if v, ok := claims["email"].(string); ok && v != "" {
				email = v
			}
			if v, ok := claims["name"].(string); ok && v != "" {
				name = v
			}
		}
	}

	user, err := h.identityService.Sync(orgID, externalID, email, name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Me returns the caller's own profile.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.identityService.Profile(actorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Profile returns another user's public profile by internal id.
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.identityService.Profile(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewPublicUserResponse(user))
}

// ExternalProfile looks a user up by their identity-provider id.
func (h *UserHandler) ExternalProfile(c *fiber.Ctx) error {
	externalID := c.Params("external_id")
	if externalID == "" {
		return badRequest(c, "External user ID is required")
	}

	user, err := h.identityService.PublicProfile(externalID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.NewPublicUserResponse(user))
}

// ListUsers returns every account in the org. Moderator panel only.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)

	users, err := h.identityService.ListUsers(orgID)
	if err != nil {
		return serviceError(c, err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"users": out, "total": len(out)})
}
