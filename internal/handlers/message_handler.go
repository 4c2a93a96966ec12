package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/services"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) StartConversation(c *fiber.Ctx) error {
	orgID := org.GetOrgID(c)
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.StartConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	conv, err := h.messageService.StartConversation(orgID, actorID, req.UserID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

func (h *MessageHandler) ListConversations(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}

	convs, err := h.messageService.ListConversations(actorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"conversations": convs})
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid conversation ID")
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	msg, err := h.messageService.SendMessage(actorID, convID, req.Body)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	actorID, err := org.GetActorID(c)
	if err != nil {
		return unauthorized(c)
	}
	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid conversation ID")
	}

	msgs, err := h.messageService.ListMessages(actorID, convID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"messages": msgs})
}
