package handlers

import (
	"clan-hub-system/apispec"
	"clan-hub-system/middleware"
	"clan-hub-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLogRoutes(app *fiber.App, logService *services.LogService) {
	// Reads are public; the history pages render without a login.
	register(app, apispec.WarLogList, logService.ListWarLogs)
	register(app, apispec.PvpLogList, logService.ListPvpLogs)

	register(app, apispec.WarLogCreate, middleware.RequireAuth(), logService.CreateWarLog)
	register(app, apispec.PvpLogCreate, middleware.RequireAuth(), logService.CreatePvpLog)
	register(app, apispec.ProofUpload, middleware.RequireAuth(), logService.UploadProof)
}
