package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
)

// FeatureRequired rejects requests from orgs that don't have the named
// feature enabled in the registry. Absent means disabled.
func FeatureRequired(registry *org.Registry, feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !registry.HasFeature(org.GetOrgID(c), feature) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "This feature is not enabled for your organization",
			})
		}
		return c.Next()
	}
}
