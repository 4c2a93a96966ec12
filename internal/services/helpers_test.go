package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/studyhub/backend/internal/database"
	"github.com/studyhub/backend/internal/models"
	"gorm.io/gorm"
)

const testOrg = "uni-a"

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		ID:         uuid.New(),
		OrgID:      testOrg,
		ExternalID: "ext-" + uuid.NewString(),
		Name:       "Test User",
		Email:      uuid.NewString() + "@example.edu",
		Role:       role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBannedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := seedUser(t, db, models.RoleGeneral)
	require.NoError(t, db.Model(user).Update("is_banned", true).Error)
	user.IsBanned = true
	return user
}

func seedCourse(t *testing.T, db *gorm.DB) *models.Course {
	t.Helper()
	course := &models.Course{
		ID:    uuid.New(),
		OrgID: testOrg,
		Name:  "Course " + uuid.NewString(),
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func seedNote(t *testing.T, db *gorm.DB, author *models.User, status string) *models.Note {
	t.Helper()
	course := seedCourse(t, db)
	note := &models.Note{
		ID:       uuid.New(),
		OrgID:    testOrg,
		CourseID: course.ID,
		UserID:   author.ID,
		Title:    "Lecture notes",
		FileURL:  "https://cdn.example.com/notes.pdf",
		Status:   status,
	}
	require.NoError(t, db.Create(note).Error)
	return note
}
