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
	ErrReportNotFound     = errors.New("report not found")
	ErrReportClosed       = errors.New("report already resolved or rejected")
	ErrReasonRequired     = errors.New("report reason is required")
	ErrInvalidAction      = errors.New("invalid action: must be accept or dismiss")
	ErrRequestNotFound    = errors.New("role request not found")
	ErrRequestClosed      = errors.New("role request already decided")
	ErrPendingRoleRequest = errors.New("a pending role request already exists")
	ErrInvalidDecision    = errors.New("invalid decision: must be approved or rejected")
	ErrRoleRequired       = errors.New("requested role is required")
	ErrNoteNotFound       = errors.New("note not found")
)

// Report actions a moderator may take.
const (
	ReportActionAccept  = "accept"
	ReportActionDismiss = "dismiss"
)

// ModerationService runs the report and role-request state machines.
// All transitions are role-gated and atomic: the target mutation and
// the status change commit together or not at all.
type ModerationService struct {
	db   *gorm.DB
	gate *AuthorizationGate
}

func NewModerationService(db *gorm.DB, gate *AuthorizationGate) *ModerationService {
	return &ModerationService{db: db, gate: gate}
}

// FileUserReport creates a pending report against a user. Duplicate
// reports from the same reporter are allowed.
func (s *ModerationService) FileUserReport(orgID string, reporterID, reportedID uuid.UUID, issue string) (*models.UserReport, error) {
	if strings.TrimSpace(issue) == "" {
		return nil, ErrReasonRequired
	}
	if _, err := s.gate.RequireActive(reporterID); err != nil {
		return nil, err
	}
	if _, err := s.gate.Actor(reportedID); err != nil {
		return nil, err
	}

	report := models.UserReport{
		ID:             uuid.New(),
		OrgID:          orgID,
		ReportedUserID: reportedID,
		ReporterUserID: reporterID,
		Issue:          issue,
		Status:         models.ReportStatusPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// FileNoteReport creates a pending report against a note.
func (s *ModerationService) FileNoteReport(orgID string, reporterID, noteID uuid.UUID, reason string) (*models.NoteReport, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	if _, err := s.gate.RequireActive(reporterID); err != nil {
		return nil, err
	}
	var note models.Note
	if err := s.db.First(&note, "id = ?", noteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	report := models.NoteReport{
		ID:             uuid.New(),
		OrgID:          orgID,
		NoteID:         noteID,
		ReporterUserID: reporterID,
		Reason:         reason,
		Status:         models.ReportStatusPending,
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ListUserReports returns pending user reports for the moderation queue.
func (s *ModerationService) ListUserReports(orgID string, actorID uuid.UUID) ([]models.UserReport, error) {
	if _, err := s.gate.RequireModerator(actorID); err != nil {
		return nil, err
	}
	var reports []models.UserReport
	err := s.db.Scopes(org.ForOrg(orgID)).
		Where("status = ?", models.ReportStatusPending).
		Order("created_at ASC").
		Preload("ReportedUser").
		Preload("ReporterUser").
		Find(&reports).Error
	return reports, err
}

// ListNoteReports returns pending note reports for the moderation queue.
func (s *ModerationService) ListNoteReports(orgID string, actorID uuid.UUID) ([]models.NoteReport, error) {
	if _, err := s.gate.RequireModerator(actorID); err != nil {
		return nil, err
	}
	var reports []models.NoteReport
	err := s.db.Scopes(org.ForOrg(orgID)).
		Where("status = ?", models.ReportStatusPending).
		Order("created_at ASC").
		Find(&reports).Error
	return reports, err
}

// ResolveUserReport transitions a pending user report. accept bans the
// reported user and marks the report resolved; dismiss marks it
// rejected. Resolved and rejected are terminal.
func (s *ModerationService) ResolveUserReport(actorID, reportID uuid.UUID, action string) (string, error) {
	if action != ReportActionAccept && action != ReportActionDismiss {
		return "", ErrInvalidAction
	}
	if _, err := s.gate.RequireModerator(actorID); err != nil {
		return "", err
	}

	var status string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var report models.UserReport
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return err
		}
		if report.Status != models.ReportStatusPending {
			return ErrReportClosed
		}

		if action == ReportActionAccept {
			if err := tx.Model(&models.User{}).
				Where("id = ?", report.ReportedUserID).
				Update("is_banned", true).Error; err != nil {
				return err
			}
			status = models.ReportStatusResolved
		} else {
			status = models.ReportStatusRejected
		}
		return tx.Model(&report).Update("status", status).Error
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// ResolveNoteReport transitions a pending note report. accept hides the
// note (status removed) and marks the report resolved; dismiss marks it
// rejected.
func (s *ModerationService) ResolveNoteReport(actorID, reportID uuid.UUID, action string) (string, error) {
	if action != ReportActionAccept && action != ReportActionDismiss {
		return "", ErrInvalidAction
	}
	if _, err := s.gate.RequireModerator(actorID); err != nil {
		return "", err
	}

	var status string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var report models.NoteReport
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return err
		}
		if report.Status != models.ReportStatusPending {
			return ErrReportClosed
		}

		if action == ReportActionAccept {
			if err := tx.Model(&models.Note{}).
				Where("id = ?", report.NoteID).
				Update("status", models.NoteStatusRemoved).Error; err != nil {
				return err
			}
			status = models.ReportStatusResolved
		} else {
			status = models.ReportStatusRejected
		}
		return tx.Model(&report).Update("status", status).Error
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// RequestRole files a role request. The pending-per-user invariant is
// backed by a partial unique index, so the pre-check here only shapes
// the error; a racing insert still fails cleanly.
func (s *ModerationService) RequestRole(orgID string, actorID uuid.UUID, requestedRole string) (*models.RoleRequest, error) {
	if strings.TrimSpace(requestedRole) == "" {
		return nil, ErrRoleRequired
	}
	if _, err := s.gate.RequireActive(actorID); err != nil {
		return nil, err
	}

	var existing models.RoleRequest
	err := s.db.Where("user_id = ? AND status = ?", actorID, models.RoleRequestPending).
		First(&existing).Error
	if err == nil {
		return nil, ErrPendingRoleRequest
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request := models.RoleRequest{
		ID:            uuid.New(),
		OrgID:         orgID,
		UserID:        actorID,
		RequestedRole: requestedRole,
		Status:        models.RoleRequestPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPendingRoleRequest
		}
		return nil, err
	}
	return &request, nil
}

// ListRoleRequests returns pending role requests for moderators.
func (s *ModerationService) ListRoleRequests(orgID string, actorID uuid.UUID) ([]models.RoleRequest, error) {
	if _, err := s.gate.RequireModerator(actorID); err != nil {
		return nil, err
	}
	var requests []models.RoleRequest
	err := s.db.Scopes(org.ForOrg(orgID)).
		Where("status = ?", models.RoleRequestPending).
		Order("created_at ASC").
		Preload("User").
		Find(&requests).Error
	return requests, err
}

// DecideRoleRequest transitions a pending role request. Approval also
// moves the requester to the requested role, in the same transaction.
func (s *ModerationService) DecideRoleRequest(actorID, requestID uuid.UUID, decision string) (string, error) {
	if decision != models.RoleRequestApproved && decision != models.RoleRequestRejected {
		return "", ErrInvalidDecision
	}
	if _, err := s.gate.RequireModerator(actorID); err != nil {
		return "", err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var request models.RoleRequest
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if request.Status != models.RoleRequestPending {
			return ErrRequestClosed
		}

		if decision == models.RoleRequestApproved {
			if err := tx.Model(&models.User{}).
				Where("id = ?", request.UserID).
				Update("role", request.RequestedRole).Error; err != nil {
				return err
			}
		}
		return tx.Model(&request).Update("status", decision).Error
	})
	if err != nil {
		return "", err
	}
	return decision, nil
}
