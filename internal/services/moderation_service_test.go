package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyhub/backend/internal/models"
	"gorm.io/gorm"
)

type moderationFixture struct {
	db        *gorm.DB
	svc       *ModerationService
	moderator *models.User
	member    *models.User
	target    *models.User
}

func newModerationFixture(t *testing.T) *moderationFixture {
	db := setupServiceDB(t)
	return &moderationFixture{
		db:        db,
		svc:       NewModerationService(db, NewAuthorizationGate(db)),
		moderator: seedUser(t, db, models.RoleModerator),
		member:    seedUser(t, db, models.RoleGeneral),
		target:    seedUser(t, db, models.RoleGeneral),
	}
}

func TestFileUserReport(t *testing.T) {
	f := newModerationFixture(t)

	report, err := f.svc.FileUserReport(testOrg, f.member.ID, f.target.ID, "spam in thread")
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, f.target.ID, report.ReportedUserID)
	assert.Equal(t, f.member.ID, report.ReporterUserID)

	// Duplicate reports from the same reporter are allowed.
	_, err = f.svc.FileUserReport(testOrg, f.member.ID, f.target.ID, "still spamming")
	require.NoError(t, err)
}

func TestFileUserReportValidation(t *testing.T) {
	f := newModerationFixture(t)

	_, err := f.svc.FileUserReport(testOrg, f.member.ID, f.target.ID, "   ")
	assert.ErrorIs(t, err, ErrReasonRequired)

	_, err = f.svc.FileUserReport(testOrg, f.member.ID, uuid.New(), "spam")
	assert.ErrorIs(t, err, ErrUserNotFound)

	banned := seedBannedUser(t, f.db)
	_, err = f.svc.FileUserReport(testOrg, banned.ID, f.target.ID, "spam")
	assert.ErrorIs(t, err, ErrBanned)
}

func TestResolveUserReportAcceptBansUser(t *testing.T) {
	f := newModerationFixture(t)
	report, err := f.svc.FileUserReport(testOrg, f.member.ID, f.target.ID, "harassment")
	require.NoError(t, err)

	status, err := f.svc.ResolveUserReport(f.moderator.ID, report.ID, ReportActionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, status)

	var reported models.User
	require.NoError(t, f.db.First(&reported, "id = ?", f.target.ID).Error)
	assert.True(t, reported.IsBanned)
}

func TestResolveUserReportDismiss(t *testing.T) {
	f := newModerationFixture(t)
	report, err := f.svc.FileUserReport(testOrg, f.member.ID, f.target.ID, "harassment")
	require.NoError(t, err)

	status, err := f.svc.ResolveUserReport(f.moderator.ID, report.ID, ReportActionDismiss)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusRejected, status)

	var reported models.User
	require.NoError(t, f.db.First(&reported, "id = ?", f.target.ID).Error)
	assert.False(t, reported.IsBanned)
}

func TestResolveUserReportTerminalStates(t *testing.T) {
	f := newModerationFixture(t)
	report, err := f.svc.FileUserReport(testOrg, f.member.ID, f.target.ID, "spam")
	require.NoError(t, err)

	_, err = f.svc.ResolveUserReport(f.moderator.ID, report.ID, ReportActionDismiss)
	require.NoError(t, err)

	_, err = f.svc.ResolveUserReport(f.moderator.ID, report.ID, ReportActionAccept)
	assert.ErrorIs(t, err, ErrReportClosed)
}

func TestResolveUserReportAuthorization(t *testing.T) {
	f := newModerationFixture(t)
	report, err := f.svc.FileUserReport(testOrg, f.member.ID, f.target.ID, "spam")
	require.NoError(t, err)

	_, err = f.svc.ResolveUserReport(f.member.ID, report.ID, ReportActionAccept)
	assert.ErrorIs(t, err, ErrNotModerator)

	_, err = f.svc.ResolveUserReport(f.moderator.ID, report.ID, "escalate")
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = f.svc.ResolveUserReport(f.moderator.ID, uuid.New(), ReportActionAccept)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestAdminCanResolveReports(t *testing.T) {
	f := newModerationFixture(t)
	admin := seedUser(t, f.db, models.RoleAdmin)
	report, err := f.svc.FileUserReport(testOrg, f.member.ID, f.target.ID, "spam")
	require.NoError(t, err)

	status, err := f.svc.ResolveUserReport(admin.ID, report.ID, ReportActionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, status)
}

func TestResolveNoteReportAcceptRemovesNote(t *testing.T) {
	f := newModerationFixture(t)
	note := seedNote(t, f.db, f.target, models.NoteStatusApproved)
	report, err := f.svc.FileNoteReport(testOrg, f.member.ID, note.ID, "plagiarized")
	require.NoError(t, err)

	status, err := f.svc.ResolveNoteReport(f.moderator.ID, report.ID, ReportActionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, status)

	var reloaded models.Note
	require.NoError(t, f.db.First(&reloaded, "id = ?", note.ID).Error)
	assert.Equal(t, models.NoteStatusRemoved, reloaded.Status)
}

func TestResolveNoteReportDismissKeepsNote(t *testing.T) {
	f := newModerationFixture(t)
	note := seedNote(t, f.db, f.target, models.NoteStatusApproved)
	report, err := f.svc.FileNoteReport(testOrg, f.member.ID, note.ID, "low quality")
	require.NoError(t, err)

	status, err := f.svc.ResolveNoteReport(f.moderator.ID, report.ID, ReportActionDismiss)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusRejected, status)

	var reloaded models.Note
	require.NoError(t, f.db.First(&reloaded, "id = ?", note.ID).Error)
	assert.Equal(t, models.NoteStatusApproved, reloaded.Status)
}

func TestFileNoteReportUnknownNote(t *testing.T) {
	f := newModerationFixture(t)
	_, err := f.svc.FileNoteReport(testOrg, f.member.ID, uuid.New(), "bad")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestListReportsRequiresModerator(t *testing.T) {
	f := newModerationFixture(t)

	_, err := f.svc.ListUserReports(testOrg, f.member.ID)
	assert.ErrorIs(t, err, ErrNotModerator)

	_, err = f.svc.FileUserReport(testOrg, f.member.ID, f.target.ID, "spam")
	require.NoError(t, err)

	reports, err := f.svc.ListUserReports(testOrg, f.moderator.ID)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, f.target.ID, reports[0].ReportedUser.ID)
}

func TestRequestRoleLifecycle(t *testing.T) {
	f := newModerationFixture(t)

	request, err := f.svc.RequestRole(testOrg, f.member.ID, models.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, models.RoleRequestPending, request.Status)

	// One pending request per user.
	_, err = f.svc.RequestRole(testOrg, f.member.ID, models.RoleModerator)
	assert.ErrorIs(t, err, ErrPendingRoleRequest)

	status, err := f.svc.DecideRoleRequest(f.moderator.ID, request.ID, models.RoleRequestApproved)
	require.NoError(t, err)
	assert.Equal(t, models.RoleRequestApproved, status)

	var promoted models.User
	require.NoError(t, f.db.First(&promoted, "id = ?", f.member.ID).Error)
	assert.Equal(t, models.RoleModerator, promoted.Role)
	assert.True(t, promoted.IsModerator())

	// The slot frees up once the pending request is decided.
	_, err = f.svc.RequestRole(testOrg, f.member.ID, models.RoleAdmin)
	require.NoError(t, err)
}

func TestDecideRoleRequestRejectKeepsRole(t *testing.T) {
	f := newModerationFixture(t)
	request, err := f.svc.RequestRole(testOrg, f.member.ID, models.RoleModerator)
	require.NoError(t, err)

	status, err := f.svc.DecideRoleRequest(f.moderator.ID, request.ID, models.RoleRequestRejected)
	require.NoError(t, err)
	assert.Equal(t, models.RoleRequestRejected, status)

	var user models.User
	require.NoError(t, f.db.First(&user, "id = ?", f.member.ID).Error)
	assert.Equal(t, models.RoleGeneral, user.Role)
}

func TestDecideRoleRequestGuards(t *testing.T) {
	f := newModerationFixture(t)
	request, err := f.svc.RequestRole(testOrg, f.member.ID, models.RoleModerator)
	require.NoError(t, err)

	_, err = f.svc.DecideRoleRequest(f.member.ID, request.ID, models.RoleRequestApproved)
	assert.ErrorIs(t, err, ErrNotModerator)

	_, err = f.svc.DecideRoleRequest(f.moderator.ID, request.ID, "maybe")
	assert.ErrorIs(t, err, ErrInvalidDecision)

	_, err = f.svc.DecideRoleRequest(f.moderator.ID, uuid.New(), models.RoleRequestApproved)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = f.svc.DecideRoleRequest(f.moderator.ID, request.ID, models.RoleRequestRejected)
	require.NoError(t, err)
	_, err = f.svc.DecideRoleRequest(f.moderator.ID, request.ID, models.RoleRequestApproved)
	assert.ErrorIs(t, err, ErrRequestClosed)
}

func TestRequestRoleValidation(t *testing.T) {
	f := newModerationFixture(t)

	_, err := f.svc.RequestRole(testOrg, f.member.ID, "  ")
	assert.ErrorIs(t, err, ErrRoleRequired)

	banned := seedBannedUser(t, f.db)
	_, err = f.svc.RequestRole(testOrg, banned.ID, models.RoleModerator)
	assert.ErrorIs(t, err, ErrBanned)
}
