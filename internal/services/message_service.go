package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("not a participant in this conversation")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")
	ErrBodyRequired         = errors.New("message body is required")
)

// MessageService handles direct conversations between two users.
type MessageService struct {
	db   *gorm.DB
	gate *AuthorizationGate
}

func NewMessageService(db *gorm.DB, gate *AuthorizationGate) *MessageService {
	return &MessageService{db: db, gate: gate}
}

// StartConversation finds or creates the conversation between the
// actor and the peer. The pair is unordered, so both orientations are
// checked before creating.
func (s *MessageService) StartConversation(orgID string, actorID, peerID uuid.UUID) (*models.Conversation, error) {
	if actorID == peerID {
		return nil, ErrSelfConversation
	}
	if _, err := s.gate.RequireActive(actorID); err != nil {
		return nil, err
	}
	if _, err := s.gate.Actor(peerID); err != nil {
		return nil, err
	}

	var conv models.Conversation
	err := s.db.Where(
		"(user_a_id = ? AND user_b_id = ?) OR (user_a_id = ? AND user_b_id = ?)",
		actorID, peerID, peerID, actorID,
	).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = models.Conversation{
		ID:      uuid.New(),
		OrgID:   orgID,
		UserAID: actorID,
		UserBID: peerID,
	}
	if err := s.db.Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns the actor's conversations, most recently
// updated first.
func (s *MessageService) ListConversations(actorID uuid.UUID) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := s.db.Where("user_a_id = ? OR user_b_id = ?", actorID, actorID).
		Order("updated_at DESC").
		Find(&convs).Error
	return convs, err
}

func (s *MessageService) getConversation(actorID, convID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.db.First(&conv, "id = ?", convID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !conv.Involves(actorID) {
		return nil, ErrNotParticipant
	}
	return &conv, nil
}

// SendMessage appends a message to a conversation the actor belongs to
// and bumps the conversation's updated_at for ordering.
func (s *MessageService) SendMessage(actorID, convID uuid.UUID, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrBodyRequired
	}
	if _, err := s.gate.RequireActive(actorID); err != nil {
		return nil, err
	}
	conv, err := s.getConversation(actorID, convID)
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       actorID,
		Body:           body,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(conv).Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns a conversation's messages in send order.
// Participants only.
func (s *MessageService) ListMessages(actorID, convID uuid.UUID) ([]models.Message, error) {
	if _, err := s.getConversation(actorID, convID); err != nil {
		return nil, err
	}
	var msgs []models.Message
	err := s.db.Where("conversation_id = ?", convID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}
