package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyhub/backend/internal/models"
)

type fakeCheckout struct {
	lastUser uuid.UUID
}

func (f *fakeCheckout) CreateSession(_ context.Context, userID uuid.UUID, _ string) (string, error) {
	f.lastUser = userID
	return "https://pay.example.com/session/abc", nil
}

func TestStartCheckout(t *testing.T) {
	db := setupServiceDB(t)
	checkout := &fakeCheckout{}
	svc := NewPaymentService(db, NewAuthorizationGate(db), checkout)
	member := seedUser(t, db, models.RoleGeneral)

	url, err := svc.StartCheckout(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/session/abc", url)
	assert.Equal(t, member.ID, checkout.lastUser)

	banned := seedBannedUser(t, db)
	_, err = svc.StartCheckout(context.Background(), banned.ID)
	assert.ErrorIs(t, err, ErrBanned)
}

func TestApplyEventTogglesPremium(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPaymentService(db, NewAuthorizationGate(db), &fakeCheckout{})
	member := seedUser(t, db, models.RoleGeneral)

	require.NoError(t, svc.ApplyEvent(PaymentEventCompleted, member.ID))
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", member.ID).Error)
	assert.True(t, user.IsPremium)

	require.NoError(t, svc.ApplyEvent(PaymentEventRevoked, member.ID))
	require.NoError(t, db.First(&user, "id = ?", member.ID).Error)
	assert.False(t, user.IsPremium)

	assert.ErrorIs(t, svc.ApplyEvent("checkout.opened", member.ID), ErrUnknownPaymentEvent)
	assert.ErrorIs(t, svc.ApplyEvent(PaymentEventCompleted, uuid.New()), ErrUserNotFound)
}
