package services

import (
	"clan-hub-system/models"
)

// CanAccessTicket decides whether a user may read or post to a ticket's
// message thread. The creator and staff always can; tryouters are limited
// to tryout tickets and war fighters to war requests; everyone else is
// denied. Callers surface a false return as 403, never as a crash.
func CanAccessTicket(role models.Role, ticketType models.TicketType, isCreator bool) bool {
	if isCreator {
		return true
	}
	switch role {
	case models.RoleAdmin, models.RoleModerator:
		return true
	case models.RoleTryouter:
		return ticketType == models.TicketTryout
	case models.RoleWarFighter:
		return ticketType == models.TicketWarRequest
	default:
		return false
	}
}
