package org

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GetOrgID extracts the org_id from Fiber context locals.
func GetOrgID(c *fiber.Ctx) string {
	if orgID, ok := c.Locals("org_id").(string); ok {
		return orgID
	}
	return ""
}

// GetExternalUserID extracts the identity-provider user id (sub claim)
// from the verified session token in context.
func GetExternalUserID(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}

// GetActorID extracts the resolved internal user id placed in locals by
// the actor middleware.
func GetActorID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals("actor_id").(uuid.UUID); ok && id != uuid.Nil {
		return id, nil
	}
	return uuid.Nil, errors.New("actor not resolved")
}
