package handlers

import (
	"clan-hub-system/apispec"
	"clan-hub-system/middleware"
	"clan-hub-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTeamRoutes(app *fiber.App, teamService *services.TeamService) {
	register(app, apispec.WarTeamList, teamService.ListTeams)
	register(app, apispec.WarTeamUpdate, middleware.RequireAdmin(), teamService.UpdateTeam)
}
