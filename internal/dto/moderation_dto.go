package dto

import "github.com/google/uuid"

type ReportUserRequest struct {
	ReportedUserID uuid.UUID `json:"reported_user_id"`
	Issue          string    `json:"issue"`
}

type ReportNoteRequest struct {
	Reason string `json:"reason"`
}

// ResolveReportRequest carries the moderator's verdict: accept or dismiss.
type ResolveReportRequest struct {
	Action string `json:"action"`
}

type RoleRequestRequest struct {
	Role string `json:"role"`
}

// DecideRoleRequestRequest carries the admin's verdict: approved or rejected.
type DecideRoleRequestRequest struct {
	Decision string `json:"decision"`
}
