package handlers

import (
	"clan-hub-system/apispec"
	"clan-hub-system/middleware"
	"clan-hub-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTicketRoutes(app *fiber.App, ticketService *services.TicketService) {
	register(app, apispec.TicketList, middleware.RequireAuth(), ticketService.ListTickets)
	register(app, apispec.TicketGet, middleware.RequireAuth(), ticketService.GetTicket)
	register(app, apispec.TicketCreate, middleware.RequireAuth(), ticketService.CreateTicket)
	// Status and assignee changes are a staff action.
	register(app, apispec.TicketUpdate, middleware.RequireStaff(), ticketService.UpdateTicket)
	register(app, apispec.TicketAddMessage, middleware.RequireAuth(), ticketService.AddMessage)
}
