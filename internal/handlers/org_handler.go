package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
)

type OrgHandler struct {
	registry *org.Registry
}

func NewOrgHandler(registry *org.Registry) *OrgHandler {
	return &OrgHandler{registry: registry}
}

// Info returns the public description of one organization. Clients
// call this before login to discover the auth tenant and features.
func (h *OrgHandler) Info(c *fiber.Ctx) error {
	cfg := h.registry.Get(c.Params("id"))
	if cfg == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Organization not found",
		})
	}
	return c.JSON(dto.OrgInfoResponse{
		OrgID:     cfg.OrgID,
		OrgName:   cfg.OrgName,
		AuthOrgID: cfg.AuthOrgID,
		Features:  cfg.Features,
	})
}
