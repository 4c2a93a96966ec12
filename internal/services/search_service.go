package services

import (
	"strings"

	"github.com/studyhub/backend/internal/models"
	"github.com/studyhub/backend/internal/org"
	"gorm.io/gorm"
)

// SearchResults groups case-insensitive substring matches across the
// org's users, courses and approved notes.
type SearchResults struct {
	Users   []models.User   `json:"users"`
	Courses []models.Course `json:"courses"`
	Notes   []models.Note   `json:"notes"`
}

type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search runs a case-insensitive substring match. lower(...) LIKE
// keeps it portable across Postgres and SQLite. An empty query
// returns empty results rather than everything.
func (s *SearchService) Search(orgID, query string) (*SearchResults, error) {
	results := &SearchResults{
		Users:   []models.User{},
		Courses: []models.Course{},
		Notes:   []models.Note{},
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"

	if err := s.db.Scopes(org.ForOrg(orgID)).
		Where("lower(name) LIKE ?", pattern).
		Limit(25).
		Find(&results.Users).Error; err != nil {
		return nil, err
	}
	if err := s.db.Scopes(org.ForOrg(orgID)).
		Where("lower(name) LIKE ?", pattern).
		Limit(25).
		Find(&results.Courses).Error; err != nil {
		return nil, err
	}
	if err := s.db.Scopes(org.ForOrg(orgID)).
		Where("status = ? AND lower(title) LIKE ?", models.NoteStatusApproved, pattern).
		Limit(25).
		Find(&results.Notes).Error; err != nil {
		return nil, err
	}
	return results, nil
}
