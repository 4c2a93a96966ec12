package dto

import "github.com/google/uuid"

type StartConversationRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}
