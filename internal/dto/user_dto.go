package dto

import (
	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/models"
)

type SyncUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	IsBanned      bool      `json:"is_banned"`
	IsPremium     bool      `json:"is_premium"`
	Contributions int       `json:"contributions"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		IsBanned:      u.IsBanned,
		IsPremium:     u.IsPremium,
		Contributions: u.Contributions,
	}
}

// PublicUserResponse omits contact and account details.
type PublicUserResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Contributions int       `json:"contributions"`
}

func NewPublicUserResponse(u *models.User) PublicUserResponse {
	return PublicUserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Role:          u.Role,
		Contributions: u.Contributions,
	}
}
