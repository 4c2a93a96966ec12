package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrBanned       = errors.New("banned users cannot perform this action")
	ErrNotModerator = errors.New("moderator or admin role required")
)

// AuthorizationGate resolves actors and answers the two role predicates
// every engine consults. Stateless: a pure read-through over the users
// table.
type AuthorizationGate struct {
	db *gorm.DB
}

func NewAuthorizationGate(db *gorm.DB) *AuthorizationGate {
	return &AuthorizationGate{db: db}
}

// Actor loads a user by internal id.
func (g *AuthorizationGate) Actor(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := g.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ActorByExternalID loads a user by the identity provider's id.
func (g *AuthorizationGate) ActorByExternalID(externalID string) (*models.User, error) {
	var user models.User
	if err := g.db.First(&user, "external_id = ?", externalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RequireActive rejects banned actors before any engine logic runs.
func (g *AuthorizationGate) RequireActive(id uuid.UUID) (*models.User, error) {
	user, err := g.Actor(id)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, ErrBanned
	}
	return user, nil
}

// RequireModerator rejects actors whose role is not Moderator or Admin.
func (g *AuthorizationGate) RequireModerator(id uuid.UUID) (*models.User, error) {
	user, err := g.RequireActive(id)
	if err != nil {
		return nil, err
	}
	if !user.IsModerator() {
		return nil, ErrNotModerator
	}
	return user, nil
}
