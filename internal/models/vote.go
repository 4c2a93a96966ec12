package models

import (
	"time"

	"github.com/google/uuid"
)

// PostVote is the ledger row for a user's current vote on a post.
// The composite unique index is what serializes concurrent first votes.
type PostVote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_votes_post_user" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_votes_post_user" json:"user_id"`
	Choice    string    `gorm:"size:10;not null" json:"choice"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VoteChoice returns the recorded choice.
func (v PostVote) VoteChoice() string { return v.Choice }

// NoteVote is the ledger row for a user's current vote on a note.
type NoteVote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NoteID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_votes_note_user" json:"note_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_note_votes_note_user" json:"user_id"`
	Choice    string    `gorm:"size:10;not null" json:"choice"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VoteChoice returns the recorded choice.
func (v NoteVote) VoteChoice() string { return v.Choice }
