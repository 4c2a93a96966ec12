package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values assignable to a user. Moderator and Admin may resolve
// reports and role requests; Admin additionally reviews notes.
const (
	RoleGeneral   = "General"
	RoleModerator = "Moderator"
	RoleAdmin     = "Admin"
)

// User is the internal actor record, synced from the identity provider
// on first sight. Never hard-deleted: historical content references it.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID         string    `gorm:"size:50;not null;index;uniqueIndex:idx_users_org_email" json:"-"`
	ExternalID    string    `gorm:"size:255;not null;uniqueIndex" json:"external_id"`
	Name          string    `gorm:"size:255" json:"name"`
	Email         string    `gorm:"size:255;not null;uniqueIndex:idx_users_org_email" json:"email"`
	Role          string    `gorm:"size:50;default:'General'" json:"role"`
	IsBanned      bool      `gorm:"default:false" json:"is_banned"`
	IsPremium     bool      `gorm:"default:false" json:"is_premium"`
	Contributions int       `gorm:"default:0" json:"contributions"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsModerator reports whether the user may act on reports and role requests.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
