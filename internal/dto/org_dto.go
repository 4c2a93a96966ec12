package dto

// OrgInfoResponse is the public description of an organization. The
// auth org id tells clients which identity-provider tenant to log in
// against.
type OrgInfoResponse struct {
	OrgID     string          `json:"org_id"`
	OrgName   string          `json:"org_name"`
	AuthOrgID string          `json:"auth_org_id"`
	Features  map[string]bool `json:"features"`
}
