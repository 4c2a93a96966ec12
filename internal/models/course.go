package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is a discussion board plus a note library.
type Course struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID     string    `gorm:"size:50;not null;index;uniqueIndex:idx_courses_org_name" json:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_courses_org_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is a discussion entry on a course board. The vote counters are
// mutated only through the vote engine.
type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrgID     string    `gorm:"size:50;not null;index" json:"-"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Upvotes   int       `gorm:"not null;default:0" json:"upvotes"`
	Downvotes int       `gorm:"not null;default:0" json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

// VoteCounterColumns names the post's positive/negative counter columns.
func (Post) VoteCounterColumns() (string, string) { return "upvotes", "downvotes" }

// VoteCounts returns the current counter pair.
func (p Post) VoteCounts() (int, int) { return p.Upvotes, p.Downvotes }

// Comment is a reply on a post.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
