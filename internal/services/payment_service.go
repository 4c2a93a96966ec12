package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/models"
	"gorm.io/gorm"
)

var ErrUnknownPaymentEvent = errors.New("unknown payment event type")

// Payment webhook event types the billing provider sends.
const (
	PaymentEventCompleted = "checkout.completed"
	PaymentEventRevoked   = "subscription.revoked"
)

// CheckoutClient creates hosted checkout sessions at the billing
// provider. Tests substitute a fake.
type CheckoutClient interface {
	CreateSession(ctx context.Context, userID uuid.UUID, email string) (url string, err error)
}

// PaymentService starts premium checkouts and applies webhook events
// to the user's premium flag.
type PaymentService struct {
	db       *gorm.DB
	gate     *AuthorizationGate
	checkout CheckoutClient
}

func NewPaymentService(db *gorm.DB, gate *AuthorizationGate, checkout CheckoutClient) *PaymentService {
	return &PaymentService{db: db, gate: gate, checkout: checkout}
}

// StartCheckout returns a hosted checkout URL for the actor.
func (s *PaymentService) StartCheckout(ctx context.Context, actorID uuid.UUID) (string, error) {
	actor, err := s.gate.RequireActive(actorID)
	if err != nil {
		return "", err
	}
	return s.checkout.CreateSession(ctx, actor.ID, actor.Email)
}

// ApplyEvent handles a verified webhook event. The user reference is
// the ID we passed as client_reference_id when creating the session.
func (s *PaymentService) ApplyEvent(eventType string, userID uuid.UUID) error {
	var premium bool
	switch eventType {
	case PaymentEventCompleted:
		premium = true
	case PaymentEventRevoked:
		premium = false
	default:
		return ErrUnknownPaymentEvent
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("is_premium", premium)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	slog.Info("payment event applied", "event", eventType, "user_id", userID, "premium", premium)
	return nil
}
