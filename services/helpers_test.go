package services_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clan-hub-system/handlers"
	"clan-hub-system/middleware"
	"clan-hub-system/models"
	"clan-hub-system/services"
	"clan-hub-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	App  *fiber.App
	DB   *gorm.DB
	Auth *services.AuthService
}

// newTestEnv builds the full route surface against an in-memory sqlite
// database with the five war-team tiers seeded.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Ticket{},
		&models.TicketMessage{},
		&models.WarLog{},
		&models.PvpLog{},
		&models.WarTeam{},
	))
	for _, tier := range models.WarTeamTiers {
		require.NoError(t, db.Create(&models.WarTeam{Tier: tier, MemberIDs: []int64{}}).Error)
	}

	app := fiber.New()
	sessions := session.New()
	app.Use(middleware.UserContext(sessions, db))

	announcer := workers.NewAnnouncer("")
	authService := services.NewAuthService(db, sessions)

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupTicketRoutes(app, services.NewTicketService(db))
	handlers.SetupTeamRoutes(app, services.NewTeamService(db))
	handlers.SetupLogRoutes(app, services.NewLogService(db, announcer))
	handlers.SetupAdminRoutes(app, services.NewUserService(db))

	// Session bootstrap for tests: logs the given user in and hands the
	// cookie back, standing in for the Discord callback.
	app.Post("/test/login/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		if err := authService.LoginSession(c, uint(id)); err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	return &testEnv{App: app, DB: db, Auth: authService}
}

func (e *testEnv) createUser(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username:  username,
		DiscordID: fmt.Sprintf("discord-%s", username),
		Avatar:    "https://cdn.discordapp.com/avatars/x/y.png",
		Role:      role,
	}
	require.NoError(t, e.DB.Create(user).Error)
	return user
}

// login returns the session cookie for a user.
func (e *testEnv) login(t *testing.T, userID uint) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/test/login/%d", userID), nil)
	resp, err := e.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}
	t.Fatal("no session cookie returned")
	return nil
}

// request performs one API call, optionally authenticated, with a JSON body.
func (e *testEnv) request(t *testing.T, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := e.App.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
