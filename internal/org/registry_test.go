package org

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgs.json")
	payload := `{
		"orgs": [
			{
				"org_id": "uni-a",
				"org_name": "University A",
				"auth_org_id": "prov-123",
				"features": {"payments": true},
				"admin_emails": ["dean@example.edu"]
			},
			{"org_id": "uni-b", "org_name": "University B"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	registry, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Len(t, registry.All(), 2)
	assert.True(t, registry.Exists("uni-a"))
	assert.False(t, registry.Exists("uni-c"))

	cfg := registry.Get("uni-a")
	require.NotNil(t, cfg)
	assert.Equal(t, "University A", cfg.OrgName)
	assert.Equal(t, "prov-123", cfg.AuthOrgID)

	assert.True(t, registry.HasFeature("uni-a", "payments"))
	assert.False(t, registry.HasFeature("uni-b", "payments"))

	assert.True(t, registry.IsAdminEmail("uni-a", "dean@example.edu"))
	assert.False(t, registry.IsAdminEmail("uni-a", "student@example.edu"))
	assert.False(t, registry.IsAdminEmail("uni-b", "dean@example.edu"))
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
