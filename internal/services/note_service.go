package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/models"
	"github.com/studyhub/backend/internal/org"
	"github.com/studyhub/backend/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNoteFields        = errors.New("title and file are required")
	ErrNoteNotReviewable = errors.New("note is not awaiting review")
)

// NoteService handles note uploads, the admin review queue and note
// comments. Uploaded files go through the configured Uploader.
type NoteService struct {
	db       *gorm.DB
	gate     *AuthorizationGate
	uploader storage.Uploader
}

func NewNoteService(db *gorm.DB, gate *AuthorizationGate, uploader storage.Uploader) *NoteService {
	return &NoteService{db: db, gate: gate, uploader: uploader}
}

// UploadNote stores the file, creates the note in pending status and
// credits the author with a contribution.
func (s *NoteService) UploadNote(ctx context.Context, orgID string, actorID, courseID uuid.UUID, title, filename string, data []byte, tags []string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" || len(data) == 0 {
		return nil, ErrNoteFields
	}
	if _, err := s.gate.RequireActive(actorID); err != nil {
		return nil, err
	}
	var course models.Course
	if err := s.db.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	fileURL, publicID, err := s.uploader.Upload(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}

	note := models.Note{
		ID:           uuid.New(),
		OrgID:        orgID,
		CourseID:     courseID,
		UserID:       actorID,
		Title:        strings.TrimSpace(title),
		FileURL:      fileURL,
		FilePublicID: publicID,
		Tags:         datatypes.JSON(tagsJSON),
		Status:       models.NoteStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", actorID).
			Update("contributions", gorm.Expr("contributions + 1")).Error
	})
	if err != nil {
		// Best effort: don't leave an orphaned file behind.
		if delErr := s.uploader.Delete(ctx, publicID); delErr != nil {
			slog.Warn("orphaned upload cleanup failed", "public_id", publicID, "error", delErr)
		}
		return nil, err
	}
	return &note, nil
}

// ListNotes returns approved notes for a course, most helpful first.
func (s *NoteService) ListNotes(courseID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.Where("course_id = ? AND status = ?", courseID, models.NoteStatusApproved).
		Order("helpful_votes DESC, created_at DESC").
		Preload("User").
		Find(&notes).Error
	return notes, err
}

func (s *NoteService) GetNote(noteID uuid.UUID) (*models.Note, error) {
	var note models.Note
	if err := s.db.Preload("User").First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// ReviewQueue lists pending notes for moderators, oldest first.
func (s *NoteService) ReviewQueue(orgID string, actorID uuid.UUID) ([]models.Note, error) {
	if _, err := s.gate.RequireModerator(actorID); err != nil {
		return nil, err
	}
	var notes []models.Note
	err := s.db.Scopes(org.ForOrg(orgID)).
		Where("status = ?", models.NoteStatusPending).
		Order("created_at ASC").
		Preload("User").
		Find(&notes).Error
	return notes, err
}

// ApproveNote publishes a pending note.
func (s *NoteService) ApproveNote(actorID, noteID uuid.UUID) (*models.Note, error) {
	return s.reviewNote(actorID, noteID, models.NoteStatusApproved)
}

// RejectNote declines a pending note. The file stays in storage so the
// author can still retrieve it.
func (s *NoteService) RejectNote(actorID, noteID uuid.UUID) (*models.Note, error) {
	return s.reviewNote(actorID, noteID, models.NoteStatusRejected)
}

func (s *NoteService) reviewNote(actorID, noteID uuid.UUID, status string) (*models.Note, error) {
	if _, err := s.gate.RequireModerator(actorID); err != nil {
		return nil, err
	}
	var note models.Note
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&note, "id = ?", noteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoteNotFound
			}
			return err
		}
		if note.Status != models.NoteStatusPending {
			return ErrNoteNotReviewable
		}
		note.Status = status
		return tx.Model(&note).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes a note, its votes, comments and stored file.
// Author or moderator only.
func (s *NoteService) DeleteNote(ctx context.Context, actorID, noteID uuid.UUID) error {
	note, err := s.GetNote(noteID)
	if err != nil {
		return err
	}
	actor, err := s.gate.Actor(actorID)
	if err != nil {
		return err
	}
	if note.UserID != actorID && !actor.IsModerator() {
		return ErrNotOwner
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", noteID).Delete(&models.NoteReport{}).Error; err != nil {
			return err
		}
		return tx.Delete(note).Error
	})
	if err != nil {
		return err
	}

	if note.FilePublicID != "" {
		if err := s.uploader.Delete(ctx, note.FilePublicID); err != nil {
			slog.Warn("stored file cleanup failed", "note_id", noteID, "error", err)
		}
	}
	return nil
}

func (s *NoteService) AddComment(actorID, noteID uuid.UUID, content string) (*models.NoteComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	if _, err := s.gate.RequireActive(actorID); err != nil {
		return nil, err
	}
	if _, err := s.GetNote(noteID); err != nil {
		return nil, err
	}

	comment := models.NoteComment{
		ID:      uuid.New(),
		NoteID:  noteID,
		UserID:  actorID,
		Content: content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *NoteService) ListComments(noteID uuid.UUID) ([]models.NoteComment, error) {
	var comments []models.NoteComment
	err := s.db.Where("note_id = ?", noteID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// DeleteComment removes a note comment. The author may remove their
// own; admins may remove any.
func (s *NoteService) DeleteComment(actorID, noteID, commentID uuid.UUID) error {
	actor, err := s.gate.RequireActive(actorID)
	if err != nil {
		return err
	}

	var comment models.NoteComment
	if err := s.db.First(&comment, "id = ? AND note_id = ?", commentID, noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != actorID && actor.Role != models.RoleAdmin {
		return ErrNotOwner
	}
	return s.db.Delete(&comment).Error
}
