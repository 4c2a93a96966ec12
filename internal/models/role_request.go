package models

import (
	"time"

	"github.com/google/uuid"
)

// Role request states. Approved and rejected are terminal.
const (
	RoleRequestPending  = "pending"
	RoleRequestApproved = "approved"
	RoleRequestRejected = "rejected"
)

// RoleRequest is a user's application for a higher-privilege role.
// At most one pending request per user; the partial unique index in
// database.MigrateShared backs the invariant under concurrency.
type RoleRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID         string    `gorm:"size:50;not null;index" json:"-"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RequestedRole string    `gorm:"size:50;not null" json:"requested_role"`
	Status        string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
}
