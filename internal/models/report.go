package models

import (
	"time"

	"github.com/google/uuid"
)

// Report states. Resolved and rejected are terminal.
const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
	ReportStatusRejected = "rejected"
)

// UserReport flags a user for moderator review.
type UserReport struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID          string    `gorm:"size:50;not null;index" json:"-"`
	ReportedUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"reported_user_id"`
	ReporterUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_user_id"`
	Issue          string    `gorm:"size:1000;not null" json:"issue"`
	Status         string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	ReportedUser   User      `gorm:"foreignKey:ReportedUserID" json:"-"`
	ReporterUser   User      `gorm:"foreignKey:ReporterUserID" json:"-"`
}

// NoteReport flags an uploaded note for moderator review.
type NoteReport struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID          string    `gorm:"size:50;not null;index" json:"-"`
	NoteID         uuid.UUID `gorm:"type:uuid;not null;index" json:"note_id"`
	ReporterUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_user_id"`
	Reason         string    `gorm:"size:1000;not null" json:"reason"`
	Status         string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
