package services_test

import (
	"net/http"
	"testing"

	"clan-hub-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTeamsReturnsFiveTiers(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/war-teams", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	teams := decodeBody[[]models.WarTeam](t, resp)
	require.Len(t, teams, 5)
	tiers := make([]string, len(teams))
	for i, team := range teams {
		tiers[i] = team.Tier
		assert.NotNil(t, team.MemberIDs)
	}
	assert.Equal(t, models.WarTeamTiers, tiers)
}

func TestUpdateTeamReplacesRosterAndPromotes(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", models.RoleAdmin)
	u1 := env.createUser(t, "alpha", models.RoleMember)
	u2 := env.createUser(t, "beta", models.RoleGuest)
	cookie := env.login(t, admin.ID)

	resp := env.request(t, http.MethodPatch, "/api/war-teams/3", map[string]any{
		"memberIds": []uint{u1.ID, u2.ID},
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	team := decodeBody[models.WarTeam](t, resp)
	assert.Equal(t, []int64{int64(u1.ID), int64(u2.ID)}, team.MemberIDs)

	var listed models.WarTeam
	require.NoError(t, env.DB.First(&listed, 3).Error)
	assert.Equal(t, []int64{int64(u1.ID), int64(u2.ID)}, listed.MemberIDs)

	for _, id := range []uint{u1.ID, u2.ID} {
		var member models.User
		require.NoError(t, env.DB.First(&member, id).Error)
		assert.Equal(t, models.RoleWarFighter, member.Role, "user %d", id)
	}
}

func TestUpdateTeamNoDemotionOnRemoval(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", models.RoleAdmin)
	u1 := env.createUser(t, "alpha", models.RoleMember)
	cookie := env.login(t, admin.ID)

	resp := env.request(t, http.MethodPatch, "/api/war-teams/1", map[string]any{
		"memberIds": []uint{u1.ID},
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Emptying the roster leaves the removed user promoted.
	resp = env.request(t, http.MethodPatch, "/api/war-teams/1", map[string]any{
		"memberIds": []uint{},
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	team := decodeBody[models.WarTeam](t, resp)
	assert.Empty(t, team.MemberIDs)

	var member models.User
	require.NoError(t, env.DB.First(&member, u1.ID).Error)
	assert.Equal(t, models.RoleWarFighter, member.Role)
}

func TestUpdateTeamStaffKeepTheirRole(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", models.RoleAdmin)
	cookie := env.login(t, admin.ID)

	resp := env.request(t, http.MethodPatch, "/api/war-teams/2", map[string]any{
		"memberIds": []uint{admin.ID},
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reloaded models.User
	require.NoError(t, env.DB.First(&reloaded, admin.ID).Error)
	assert.Equal(t, models.RoleAdmin, reloaded.Role)
}

func TestUpdateTeamCoercesAndDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", models.RoleAdmin)
	cookie := env.login(t, admin.ID)

	resp := env.request(t, http.MethodPatch, "/api/war-teams/4", map[string]any{
		"memberIds": []any{"7", 9, 7.0, "9"},
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	team := decodeBody[models.WarTeam](t, resp)
	assert.Equal(t, []int64{7, 9}, team.MemberIDs)

	resp = env.request(t, http.MethodPatch, "/api/war-teams/4", map[string]any{
		"memberIds": []any{"not-a-number"},
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateTeamAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	mod := env.createUser(t, "mod", models.RoleModerator)
	cookie := env.login(t, mod.ID)

	resp := env.request(t, http.MethodPatch, "/api/war-teams/1", map[string]any{
		"memberIds": []uint{1},
	}, cookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.request(t, http.MethodPatch, "/api/war-teams/1", map[string]any{
		"memberIds": []uint{1},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateTeamUnknownTier(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", models.RoleAdmin)
	cookie := env.login(t, admin.ID)

	resp := env.request(t, http.MethodPatch, "/api/war-teams/9", map[string]any{
		"memberIds": []uint{},
	}, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
