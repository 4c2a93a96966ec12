package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyhub/backend/internal/models"
)

func TestStartConversationIsUnorderedPair(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMessageService(db, NewAuthorizationGate(db))
	alice := seedUser(t, db, models.RoleGeneral)
	bob := seedUser(t, db, models.RoleGeneral)

	conv, err := svc.StartConversation(testOrg, alice.ID, bob.ID)
	require.NoError(t, err)

	// Starting from the other side lands on the same conversation.
	same, err := svc.StartConversation(testOrg, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, same.ID)

	_, err = svc.StartConversation(testOrg, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfConversation)
}

func TestSendAndListMessages(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMessageService(db, NewAuthorizationGate(db))
	alice := seedUser(t, db, models.RoleGeneral)
	bob := seedUser(t, db, models.RoleGeneral)
	eve := seedUser(t, db, models.RoleGeneral)

	conv, err := svc.StartConversation(testOrg, alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(alice.ID, conv.ID, "hey, got the notes?")
	require.NoError(t, err)
	_, err = svc.SendMessage(bob.ID, conv.ID, "yes, uploading now")
	require.NoError(t, err)

	msgs, err := svc.ListMessages(alice.ID, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hey, got the notes?", msgs[0].Body)

	// Non-participants can neither read nor write.
	_, err = svc.ListMessages(eve.ID, conv.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)
	_, err = svc.SendMessage(eve.ID, conv.ID, "hi")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = svc.SendMessage(alice.ID, conv.ID, "   ")
	assert.ErrorIs(t, err, ErrBodyRequired)
}

func TestListConversations(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMessageService(db, NewAuthorizationGate(db))
	alice := seedUser(t, db, models.RoleGeneral)
	bob := seedUser(t, db, models.RoleGeneral)
	carol := seedUser(t, db, models.RoleGeneral)

	_, err := svc.StartConversation(testOrg, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.StartConversation(testOrg, alice.ID, carol.ID)
	require.NoError(t, err)

	convs, err := svc.ListConversations(alice.ID)
	require.NoError(t, err)
	assert.Len(t, convs, 2)

	convs, err = svc.ListConversations(bob.ID)
	require.NoError(t, err)
	assert.Len(t, convs, 1)
}

func TestBannedUserCannotMessage(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewMessageService(db, NewAuthorizationGate(db))
	banned := seedBannedUser(t, db)
	bob := seedUser(t, db, models.RoleGeneral)

	_, err := svc.StartConversation(testOrg, banned.ID, bob.ID)
	assert.ErrorIs(t, err, ErrBanned)
}
