package handlers

import (
	"clan-hub-system/apispec"
	"clan-hub-system/services"

	"github.com/gofiber/fiber/v2"
)

// register mounts a contract route on the app. Going through apispec keeps
// the served paths identical to the published contract.
func register(app *fiber.App, route apispec.Route, handlers ...fiber.Handler) {
	app.Add(route.Method, route.Path, handlers...)
}

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	register(app, apispec.AuthDiscord, authService.DiscordLogin)
	register(app, apispec.AuthDiscordCallback, authService.DiscordCallback)
	register(app, apispec.AuthMe, authService.Me)
	register(app, apispec.AuthLogout, authService.Logout)
}
