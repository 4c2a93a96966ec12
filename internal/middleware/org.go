package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
)

// Paths that don't require org identification.
var orgSkipPaths = []string{
	"/api/health",
	"/api/orgs/",
	"/api/webhooks/", // webhook auth is its own scheme
}

// OrgResolver extracts the org id from the X-Org-ID header or a query
// param and rejects unknown orgs. Runs before authentication, so the
// session token is not consulted here.
func OrgResolver(registry *org.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, skip := range orgSkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		orgID := c.Get("X-Org-ID")
		if orgID == "" {
			// Query param, for links that can't set headers
			orgID = c.Query("org_id")
		}
		if orgID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "X-Org-ID header is required",
			})
		}
		if !registry.Exists(orgID) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Invalid org id: " + orgID,
			})
		}
		c.Locals("org_id", orgID)
		return c.Next()
	}
}
