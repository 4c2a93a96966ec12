package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyhub/backend/internal/dto"
	"github.com/studyhub/backend/internal/org"
)

func newOrgApp(t *testing.T) *fiber.App {
	t.Helper()
	registry := org.NewRegistry()
	registry.Register(&org.OrgConfig{
		OrgID:     "uni-a",
		OrgName:   "University A",
		AuthOrgID: "prov-123",
		Features:  map[string]bool{"payments": true},
	})

	app := fiber.New()
	app.Get("/api/orgs/:id", NewOrgHandler(registry).Info)
	return app
}

func TestOrgInfo(t *testing.T) {
	app := newOrgApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/orgs/uni-a", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.OrgInfoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "uni-a", body.OrgID)
	assert.Equal(t, "University A", body.OrgName)
	assert.Equal(t, "prov-123", body.AuthOrgID)
	assert.True(t, body.Features["payments"])
}

func TestOrgInfoUnknownOrg(t *testing.T) {
	app := newOrgApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/orgs/nowhere", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
