// Package apispec is the single source of truth for the HTTP contract.
// Route registration and the client both consult this table, so the wire
// paths cannot silently drift between the two sides.
package apispec

import (
	"strconv"
	"strings"
)

// Route binds one logical operation to its method and path template.
// Path templates use fiber-style ":param" placeholders.
type Route struct {
	Method string
	Path   string
}

var (
	// Auth
	AuthDiscord         = Route{Method: "GET", Path: "/api/auth/discord"}
	AuthDiscordCallback = Route{Method: "GET", Path: "/api/auth/discord/callback"}
	AuthMe              = Route{Method: "GET", Path: "/api/user"}
	AuthLogout          = Route{Method: "POST", Path: "/api/logout"}

	// Tickets
	TicketList       = Route{Method: "GET", Path: "/api/tickets"}
	TicketGet        = Route{Method: "GET", Path: "/api/tickets/:id"}
	TicketCreate     = Route{Method: "POST", Path: "/api/tickets"}
	TicketUpdate     = Route{Method: "PATCH", Path: "/api/tickets/:id"}
	TicketAddMessage = Route{Method: "POST", Path: "/api/tickets/:id/messages"}

	// Admin
	AdminUserList   = Route{Method: "GET", Path: "/api/admin/users"}
	AdminUserUpdate = Route{Method: "PATCH", Path: "/api/admin/users/:id"}
	AdminUserRole   = Route{Method: "PATCH", Path: "/api/admin/users/:id/role"}

	// War logs
	WarLogList   = Route{Method: "GET", Path: "/api/war-logs"}
	WarLogCreate = Route{Method: "POST", Path: "/api/war-logs"}

	// Pvp logs
	PvpLogList   = Route{Method: "GET", Path: "/api/pvp-logs"}
	PvpLogCreate = Route{Method: "POST", Path: "/api/pvp-logs"}

	// War teams
	WarTeamList   = Route{Method: "GET", Path: "/api/war-teams"}
	WarTeamUpdate = Route{Method: "PATCH", Path: "/api/war-teams/:id"}

	// Proof uploads
	ProofUpload = Route{Method: "POST", Path: "/api/uploads/proof"}
)

// BuildURL substitutes named ":param" placeholders in a path template.
// Unknown params are ignored; unmatched placeholders are left in place.
func BuildURL(path string, params map[string]any) string {
	url := path
	for key, value := range params {
		placeholder := ":" + key
		if !strings.Contains(url, placeholder) {
			continue
		}
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case int:
			s = strconv.Itoa(v)
		case int64:
			s = strconv.FormatInt(v, 10)
		case uint:
			s = strconv.FormatUint(uint64(v), 10)
		default:
			continue
		}
		url = strings.Replace(url, placeholder, s, 1)
	}
	return url
}
