package models

import (
	"time"
)

type WarMatchType string

const (
	War2v2    WarMatchType = "2v2"
	War3v3    WarMatchType = "3v3"
	War6v6    WarMatchType = "6v6"
	WarPublic WarMatchType = "public"
)

func ValidWarMatchType(t WarMatchType) bool {
	switch t {
	case War2v2, War3v3, War6v6, WarPublic:
		return true
	}
	return false
}

type WarResult string

const (
	ResultWin  WarResult = "win"
	ResultLoss WarResult = "loss"
)

func ValidWarResult(r WarResult) bool {
	return r == ResultWin || r == ResultLoss
}

// WarLog is an immutable record of a crew-vs-crew battle.
type WarLog struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Type         WarMatchType `gorm:"type:varchar(8);not null" json:"type"`
	OpponentCrew string       `gorm:"not null" json:"opponentCrew"`
	Result       WarResult    `gorm:"type:varchar(8);not null" json:"result"`
	Score        string       `gorm:"not null" json:"score"`
	ProofImage   *string      `json:"proofImage"`
	LoggedBy     uint         `gorm:"not null" json:"loggedBy"`
	CreatedAt    time.Time    `json:"createdAt" gorm:"autoCreateTime"`
}

// PvpLog is an immutable record of a 1v1 duel. The loser may be an outsider,
// so only a free-text name is kept for them.
type PvpLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WinnerID   uint      `gorm:"not null;index" json:"winnerId"`
	LoserName  string    `gorm:"not null" json:"loserName"`
	Score      string    `gorm:"not null" json:"score"`
	ProofImage *string   `json:"proofImage"`
	LoggedBy   uint      `gorm:"not null" json:"loggedBy"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
