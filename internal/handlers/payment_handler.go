package handlers

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	webhookSecret  string
}

func NewPaymentHandler(paymentService *services.PaymentService, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, webhookSecret: webhookSecret}
}

// StartCheckout opens a hosted checkout session for the caller.
func (h *PaymentHandler) StartCheckout(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	url, err := h.paymentService.StartCheckout(c.Context(), actorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dto.CheckoutResponse{URL: url})
}

// HandleWebhook receives billing events. Auth is a shared secret in
// the Authorization header, compared in constant time.
func (h *PaymentHandler) HandleWebhook(c *fiber.Ctx) error {
	if h.webhookSecret == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhooks not configured",
		})
	}

	authHeader := c.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(h.webhookSecret)) != 1 {
		return unauthorized(c)
	}

	var webhook dto.PaymentWebhook
	if err := c.BodyParser(&webhook); err != nil {
		return badRequest(c, "Invalid webhook payload")
	}

	userID, err := uuid.Parse(webhook.Data.ClientReferenceID)
	if err != nil {
		return badRequest(c, "Invalid client reference")
	}

	if err := h.paymentService.ApplyEvent(webhook.Type, userID); err != nil {
		slog.Error("webhook processing failed", "event_type", webhook.Type, "error", err)
		return serviceError(c, err)
	}

	slog.Info("webhook processed", "event_type", webhook.Type)
	return c.JSON(fiber.Map{"received": true})
}
