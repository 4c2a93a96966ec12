package org

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// OrgConfig describes one organization served by this deployment.
type OrgConfig struct {
	OrgID       string          `json:"org_id"`
	OrgName     string          `json:"org_name"`
	AuthOrgID   string          `json:"auth_org_id"` // id on the identity provider side
	Features    map[string]bool `json:"features"`
	AdminEmails []string        `json:"admin_emails"`
}

type OrgsFile struct {
	Orgs []OrgConfig `json:"orgs"`
}

// Registry holds the known organizations, loaded once at startup.
type Registry struct {
	mu   sync.RWMutex
	orgs map[string]*OrgConfig
}

func NewRegistry() *Registry {
	return &Registry{
		orgs: make(map[string]*OrgConfig),
	}
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read orgs config: %w", err)
	}

	var file OrgsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse orgs config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Orgs {
		registry.Register(&file.Orgs[i])
	}
	return registry, nil
}

func (r *Registry) Register(cfg *OrgConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orgs[cfg.OrgID] = cfg
}

func (r *Registry) Get(orgID string) *OrgConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.orgs[orgID]
}

func (r *Registry) Exists(orgID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.orgs[orgID]
	return ok
}

func (r *Registry) HasFeature(orgID, feature string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.orgs[orgID]
	if !ok {
		return false
	}
	return cfg.Features[feature]
}

// IsAdminEmail reports whether the email is a bootstrap admin for the org.
func (r *Registry) IsAdminEmail(orgID, email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.orgs[orgID]
	if !ok {
		return false
	}
	for _, e := range cfg.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

func (r *Registry) All() []*OrgConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*OrgConfig, 0, len(r.orgs))
	for _, cfg := range r.orgs {
		out = append(out, cfg)
	}
	return out
}
