package models

import (
	"time"
)

// WarTeamTiers are the five fixed tiers, strongest first. Exactly one team
// row exists per tier; they are seeded at startup and never created or
// deleted afterward.
var WarTeamTiers = []string{"Z", "Y", "X", "S", "A"}

// WarTeam holds the member roster of one tier. MemberIDs is stored as a
// JSON column so it round-trips identically on postgres and the sqlite
// test driver.
type WarTeam struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Tier      string    `gorm:"type:varchar(2);uniqueIndex;not null" json:"tier"`
	MemberIDs []int64   `gorm:"serializer:json;type:text" json:"memberIds"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
