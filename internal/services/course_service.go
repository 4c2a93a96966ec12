package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/models"
	"github.com/studyhub/backend/internal/org"
	"gorm.io/gorm"
)

var (
	ErrCourseNameRequired = errors.New("course name is required")
	ErrCourseExists       = errors.New("course already exists")
	ErrCourseNotFound     = errors.New("course not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrPostFields         = errors.New("title and content are required")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrContentRequired    = errors.New("content is required")
	ErrNotOwner           = errors.New("not authorized to modify this resource")
)

// CourseService handles courses, discussion posts and post comments.
type CourseService struct {
	db   *gorm.DB
	gate *AuthorizationGate
}

func NewCourseService(db *gorm.DB, gate *AuthorizationGate) *CourseService {
	return &CourseService{db: db, gate: gate}
}

func (s *CourseService) AddCourse(orgID string, actorID uuid.UUID, name string) (*models.Course, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCourseNameRequired
	}
	if _, err := s.gate.RequireActive(actorID); err != nil {
		return nil, err
	}

	course := models.Course{
		ID:    uuid.New(),
		OrgID: orgID,
		Name:  strings.TrimSpace(name),
	}
	if err := s.db.Create(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCourseExists
		}
		return nil, err
	}
	return &course, nil
}

func (s *CourseService) ListCourses(orgID string) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.Scopes(org.ForOrg(orgID)).Order("name ASC").Find(&courses).Error
	return courses, err
}

func (s *CourseService) GetCourse(courseID uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := s.db.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// ListPosts returns the course board, newest first, with authors
// preloaded for display.
func (s *CourseService) ListPosts(courseID uuid.UUID) ([]models.Post, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}
	var posts []models.Post
	err := s.db.Where("course_id = ?", courseID).
		Order("created_at DESC").
		Preload("User").
		Find(&posts).Error
	return posts, err
}

func (s *CourseService) CreatePost(orgID string, actorID, courseID uuid.UUID, title, content string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrPostFields
	}
	if _, err := s.gate.RequireActive(actorID); err != nil {
		return nil, err
	}
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}

	post := models.Post{
		ID:       uuid.New(),
		OrgID:    orgID,
		CourseID: courseID,
		UserID:   actorID,
		Title:    title,
		Content:  content,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *CourseService) GetPost(postID uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("User").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost edits a post; only the author may edit.
func (s *CourseService) UpdatePost(actorID, postID uuid.UUID, title, content string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrPostFields
	}
	post, err := s.GetPost(postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actorID {
		return nil, ErrNotOwner
	}

	if err := s.db.Model(post).Updates(map[string]interface{}{
		"title":   title,
		"content": content,
	}).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and its comments and votes. Author or
// moderator only.
func (s *CourseService) DeletePost(actorID, postID uuid.UUID) error {
	post, err := s.GetPost(postID)
	if err != nil {
		return err
	}
	actor, err := s.gate.Actor(actorID)
	if err != nil {
		return err
	}
	if post.UserID != actorID && !actor.IsModerator() {
		return ErrNotOwner
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

func (s *CourseService) AddComment(actorID, postID uuid.UUID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	if _, err := s.gate.RequireActive(actorID); err != nil {
		return nil, err
	}
	if _, err := s.GetPost(postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:      uuid.New(),
		PostID:  postID,
		UserID:  actorID,
		Content: content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CourseService) ListComments(postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *CourseService) UpdateComment(actorID, commentID uuid.UUID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, ErrNotOwner
	}

	if err := s.db.Model(&comment).Update("content", content).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CourseService) DeleteComment(actorID, commentID uuid.UUID) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != actorID {
		return ErrNotOwner
	}
	return s.db.Delete(&comment).Error
}
