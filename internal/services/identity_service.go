package services

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/studyhub/backend/internal/models"
	"github.com/studyhub/backend/internal/org"
	"gorm.io/gorm"
)

var ErrSyncFields = errors.New("external id and email are required")

// IdentityService maps identity-provider accounts onto internal users.
// Users are created on first sync and never deleted; role, banned flag
// and contribution count live here, not at the provider.
type IdentityService struct {
	db          *gorm.DB
	registry    *org.Registry
	adminEmails []string
}

func NewIdentityService(db *gorm.DB, registry *org.Registry, adminEmails string) *IdentityService {
	return &IdentityService{
		db:          db,
		registry:    registry,
		adminEmails: parseCSV(adminEmails),
	}
}

// Sync upserts the user for a provider account. Bootstrap admin emails
// (global config or per-org registry) are promoted on every sync so a
// demoted deployment heals itself.
func (s *IdentityService) Sync(orgID, externalID, email, name string) (*models.User, error) {
	if externalID == "" || email == "" {
		return nil, ErrSyncFields
	}

	var user models.User
	err := s.db.First(&user, "external_id = ?", externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:         uuid.New(),
			OrgID:      orgID,
			ExternalID: externalID,
			Email:      email,
			Name:       name,
			Role:       models.RoleGeneral,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		slog.Info("user created from identity provider", "org_id", orgID, "user_id", user.ID.String())
	} else if err != nil {
		return nil, err
	} else if user.Email != email || (name != "" && user.Name != name) {
		updates := map[string]interface{}{"email": email}
		if name != "" {
			updates["name"] = name
		}
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
		user.Email = email
		if name != "" {
			user.Name = name
		}
	}

	if s.isBootstrapAdmin(orgID, email) && user.Role != models.RoleAdmin {
		if err := s.db.Model(&user).Update("role", models.RoleAdmin).Error; err != nil {
			return nil, err
		}
		user.Role = models.RoleAdmin
	}
	return &user, nil
}

func (s *IdentityService) isBootstrapAdmin(orgID, email string) bool {
	for _, e := range s.adminEmails {
		if e == email {
			return true
		}
	}
	return s.registry != nil && s.registry.IsAdminEmail(orgID, email)
}

// Profile returns the caller's own record.
func (s *IdentityService) Profile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// PublicProfile returns the public fields for a provider account id.
func (s *IdentityService) PublicProfile(externalID string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "external_id = ?", externalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns all users in the org, for the people directory.
func (s *IdentityService) ListUsers(orgID string) ([]models.User, error) {
	var users []models.User
	err := s.db.Scopes(org.ForOrg(orgID)).Order("name ASC").Find(&users).Error
	return users, err
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
