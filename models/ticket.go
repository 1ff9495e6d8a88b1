package models

import (
	"time"
)

type TicketType string

const (
	TicketTryout     TicketType = "tryout"
	TicketWarRequest TicketType = "war_request"
)

func ValidTicketType(t TicketType) bool {
	return t == TicketTryout || t == TicketWarRequest
}

type TicketStatus string

const (
	StatusOpen    TicketStatus = "open"
	StatusPending TicketStatus = "pending"
	StatusClosed  TicketStatus = "closed"
)

func ValidTicketStatus(s TicketStatus) bool {
	return s == StatusOpen || s == StatusPending || s == StatusClosed
}

// Ticket is a staff-routed request. Tickets are never deleted; status moves
// freely between open, pending and closed by staff action.
type Ticket struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Type       TicketType   `gorm:"type:varchar(16);not null;index" json:"type"`
	Status     TicketStatus `gorm:"type:varchar(16);not null;default:'open'" json:"status"`
	CreatorID  uint         `gorm:"not null;index" json:"creatorId"`
	AssigneeID *uint        `gorm:"index" json:"assigneeId"`
	Content    string       `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time    `json:"createdAt" gorm:"autoCreateTime"`
}

// TicketMessage is one entry of a ticket's append-only thread.
type TicketMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TicketID  uint      `gorm:"not null;index" json:"ticketId"`
	SenderID  uint      `gorm:"not null" json:"senderId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// TicketWithUsers decorates a ticket with creator and assignee snapshots
// for list views.
type TicketWithUsers struct {
	Ticket
	Creator  Snapshot  `json:"creator"`
	Assignee *Snapshot `json:"assignee,omitempty"`
}

// MessageWithSender decorates a thread entry with its sender snapshot.
type MessageWithSender struct {
	TicketMessage
	Sender Snapshot `json:"sender"`
}

// TicketDetail is the GET /api/tickets/:id response shape.
type TicketDetail struct {
	Ticket
	Messages []MessageWithSender `json:"messages"`
}
