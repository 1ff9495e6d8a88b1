package services_test

import (
	"net/http"
	"testing"

	"clan-hub-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWarLog(t *testing.T) {
	env := newTestEnv(t)
	fighter := env.createUser(t, "fighter", models.RoleWarFighter)
	cookie := env.login(t, fighter.ID)

	resp := env.request(t, http.MethodPost, "/api/war-logs", map[string]any{
		"type":         "3v3",
		"opponentCrew": "Marine Hunters",
		"result":       "win",
		"score":        "3-1",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[models.WarLog](t, resp)
	assert.Equal(t, models.War3v3, created.Type)
	assert.Equal(t, models.ResultWin, created.Result)
	assert.Equal(t, fighter.ID, created.LoggedBy)
	assert.Nil(t, created.ProofImage)
}

func TestCreateWarLogValidation(t *testing.T) {
	env := newTestEnv(t)
	fighter := env.createUser(t, "fighter", models.RoleWarFighter)
	cookie := env.login(t, fighter.ID)

	cases := []map[string]any{
		{"type": "5v5", "opponentCrew": "x", "result": "win", "score": "1-0"},
		{"type": "2v2", "result": "win", "score": "1-0"},
		{"type": "2v2", "opponentCrew": "x", "result": "draw", "score": "1-1"},
		{"type": "2v2", "opponentCrew": "x", "result": "win"},
	}
	for i, body := range cases {
		resp := env.request(t, http.MethodPost, "/api/war-logs", body, cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "case %d", i)
	}

	resp := env.request(t, http.MethodPost, "/api/war-logs", cases[0], nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListWarLogsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	fighter := env.createUser(t, "fighter", models.RoleWarFighter)

	logs := []models.WarLog{
		{Type: models.War2v2, OpponentCrew: "First", Result: models.ResultLoss, Score: "0-2", LoggedBy: fighter.ID},
		{Type: models.War6v6, OpponentCrew: "Second", Result: models.ResultWin, Score: "6-4", LoggedBy: fighter.ID},
	}
	require.NoError(t, env.DB.Create(&logs).Error)

	// Reads are public.
	resp := env.request(t, http.MethodGet, "/api/war-logs", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed := decodeBody[[]models.WarLog](t, resp)
	require.Len(t, listed, 2)
	assert.Equal(t, "Second", listed[0].OpponentCrew)
	assert.Equal(t, "First", listed[1].OpponentCrew)
}

func TestCreatePvpLog(t *testing.T) {
	env := newTestEnv(t)
	winner := env.createUser(t, "champ", models.RoleMember)
	logger := env.createUser(t, "scribe", models.RoleMember)
	cookie := env.login(t, logger.ID)

	resp := env.request(t, http.MethodPost, "/api/pvp-logs", map[string]any{
		"winnerId":  winner.ID,
		"loserName": "RandomOutsider",
		"score":     "5-3",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[models.PvpLog](t, resp)
	assert.Equal(t, winner.ID, created.WinnerID)
	assert.Equal(t, "RandomOutsider", created.LoserName)
	assert.Equal(t, logger.ID, created.LoggedBy)
}

func TestCreatePvpLogValidation(t *testing.T) {
	env := newTestEnv(t)
	logger := env.createUser(t, "scribe", models.RoleMember)
	cookie := env.login(t, logger.ID)

	// Winner must be a known clan member.
	resp := env.request(t, http.MethodPost, "/api/pvp-logs", map[string]any{
		"winnerId": 999, "loserName": "x", "score": "1-0",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/pvp-logs", map[string]any{
		"winnerId": logger.ID, "score": "1-0",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListPvpLogsPublic(t *testing.T) {
	env := newTestEnv(t)
	winner := env.createUser(t, "champ", models.RoleMember)
	require.NoError(t, env.DB.Create(&models.PvpLog{
		WinnerID: winner.ID, LoserName: "x", Score: "2-0", LoggedBy: winner.ID,
	}).Error)

	resp := env.request(t, http.MethodGet, "/api/pvp-logs", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed := decodeBody[[]models.PvpLog](t, resp)
	assert.Len(t, listed, 1)
}
