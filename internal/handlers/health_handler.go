package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/studyhub/backend/internal/database"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
)

type HealthHandler struct {
	registry *org.Registry
}

func NewHealthHandler(registry *org.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		OrgCount:  len(h.registry.All()),
	})
}
