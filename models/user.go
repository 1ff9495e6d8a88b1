package models

import (
	"time"
)

// Role is the closed set of clan roles. Free-text roles are rejected at
// every write path; ValidRole is the single gatekeeper.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleMember     Role = "member"
	RoleGuest      Role = "guest"
	RoleWarFighter Role = "war_fighter"
	RoleTryouter   Role = "tryouter"
)

// AllRoles lists every assignable role, in the order the admin UI shows them.
var AllRoles = []Role{RoleAdmin, RoleModerator, RoleMember, RoleGuest, RoleWarFighter, RoleTryouter}

func ValidRole(r Role) bool {
	for _, v := range AllRoles {
		if r == v {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role grants blanket ticket visibility and
// status-change rights.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleModerator
}

// User is a clan member created on first Discord login.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	DiscordID string    `gorm:"uniqueIndex" json:"discordId"`
	Avatar    string    `json:"avatar"`
	Role      Role      `gorm:"type:varchar(16);not null;default:'guest'" json:"role"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// Snapshot is the sender/creator identity embedded in ticket and message
// responses: what the user looked like at read time.
type Snapshot struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Role     Role   `json:"role"`
}

func (u *User) Snapshot() Snapshot {
	return Snapshot{ID: u.ID, Username: u.Username, Avatar: u.Avatar, Role: u.Role}
}
