package services_test

import (
	"net/http"
	"testing"

	"clan-hub-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListUsers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", models.RoleAdmin)
	env.createUser(t, "pirate", models.RoleGuest)

	resp := env.request(t, http.MethodGet, "/api/admin/users", nil, env.login(t, admin.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decodeBody[[]models.User](t, resp)
	assert.Len(t, users, 2)
}

func TestAdminEndpointsRejectNonAdmins(t *testing.T) {
	env := newTestEnv(t)
	mod := env.createUser(t, "mod", models.RoleModerator)
	cookie := env.login(t, mod.ID)

	resp := env.request(t, http.MethodGet, "/api/admin/users", nil, cookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPatch, "/api/admin/users/1", map[string]any{"role": "member"}, cookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/admin/users", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminUpdateUserRole(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", models.RoleAdmin)
	guest := env.createUser(t, "pirate", models.RoleGuest)
	cookie := env.login(t, admin.ID)

	resp := env.request(t, http.MethodPatch, "/api/admin/users/2", map[string]any{"role": "tryouter"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.User](t, resp)
	assert.Equal(t, models.RoleTryouter, updated.Role)
	assert.Equal(t, guest.ID, updated.ID)

	// The /role sub-path serves the same operation.
	resp = env.request(t, http.MethodPatch, "/api/admin/users/2/role", map[string]any{"role": "member"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated = decodeBody[models.User](t, resp)
	assert.Equal(t, models.RoleMember, updated.Role)
}

func TestAdminUpdateUserRoleValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", models.RoleAdmin)
	cookie := env.login(t, admin.ID)

	// Closed role set: free-text roles never reach the database.
	resp := env.request(t, http.MethodPatch, "/api/admin/users/1", map[string]any{"role": "emperor"}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPatch, "/api/admin/users/77", map[string]any{"role": "member"}, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
