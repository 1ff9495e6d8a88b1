package handlers

import (
	"clan-hub-system/apispec"
	"clan-hub-system/middleware"
	"clan-hub-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, userService *services.UserService) {
	register(app, apispec.AdminUserList, middleware.RequireAdmin(), userService.ListUsers)
	register(app, apispec.AdminUserUpdate, middleware.RequireAdmin(), userService.UpdateUserRole)
	// Older clients patch the /role sub-path; same handler either way.
	register(app, apispec.AdminUserRole, middleware.RequireAdmin(), userService.UpdateUserRole)
}
