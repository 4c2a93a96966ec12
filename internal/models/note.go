package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Note review states. Uploaded notes sit in pending until an admin
// approves them; removed hides a note that moderation acted on.
const (
	NoteStatusPending  = "pending"
	NoteStatusApproved = "approved"
	NoteStatusRejected = "rejected"
	NoteStatusRemoved  = "removed"
)

// Note is an uploaded study document attached to a course. FileURL
// points at the object-storage copy; Tags is a JSON string array.
type Note struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID          string         `gorm:"size:50;not null;index" json:"-"`
	CourseID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	FileURL        string         `gorm:"size:1024;not null" json:"file_url"`
	FilePublicID   string         `gorm:"size:255" json:"-"`
	Tags           datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	Status         string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	HelpfulVotes   int            `gorm:"not null;default:0" json:"helpful_votes"`
	UnhelpfulVotes int            `gorm:"not null;default:0" json:"unhelpful_votes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	User           User           `gorm:"foreignKey:UserID" json:"-"`
}

// VoteCounterColumns names the note's positive/negative counter columns.
func (Note) VoteCounterColumns() (string, string) { return "helpful_votes", "unhelpful_votes" }

// VoteCounts returns the current counter pair.
func (n Note) VoteCounts() (int, int) { return n.HelpfulVotes, n.UnhelpfulVotes }

// NoteComment is a reply on a note.
type NoteComment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NoteID    uuid.UUID `gorm:"type:uuid;not null;index" json:"note_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
