package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a 1:1 message thread between two users.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID     string    `gorm:"size:50;not null;index" json:"-"`
	UserAID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_a_id"`
	UserBID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Involves reports whether the user is one of the two participants.
func (c *Conversation) Involves(userID uuid.UUID) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// Message is one entry in a conversation.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
