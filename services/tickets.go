package services

import (
	"errors"
	"log"

	"clan-hub-system/middleware"
	"clan-hub-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TicketService struct {
	DB *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{DB: db}
}

type createTicketRequest struct {
	Type    models.TicketType `json:"type"`
	Content string            `json:"content"`
	// Status is accepted but ignored: new tickets always start open.
	Status models.TicketStatus `json:"status"`
}

// CreateTicket opens a new ticket for the authenticated user. Whatever
// status the client supplies, the ticket starts open.
func (s *TicketService) CreateTicket(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req createTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if !models.ValidTicketType(req.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "type must be tryout or war_request"})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "content is required"})
	}

	ticket := models.Ticket{
		Type:      req.Type,
		Status:    models.StatusOpen,
		CreatorID: user.ID,
		Content:   req.Content,
	}
	if err := s.DB.Create(&ticket).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to create ticket"})
	}

	log.Printf("🎫 [TICKETS] #%d (%s) opened by %s", ticket.ID, ticket.Type, user.Username)
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// ListTickets returns the tickets the caller is entitled to see: staff see
// everything, tryouters see tryout tickets, war fighters see war requests,
// and everyone always sees their own.
func (s *TicketService) ListTickets(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	query := s.DB.Model(&models.Ticket{}).Order("created_at DESC")
	switch {
	case user.Role.IsStaff():
		// no filter
	case user.Role == models.RoleTryouter:
		query = query.Where("type = ? OR creator_id = ?", models.TicketTryout, user.ID)
	case user.Role == models.RoleWarFighter:
		query = query.Where("type = ? OR creator_id = ?", models.TicketWarRequest, user.ID)
	default:
		query = query.Where("creator_id = ?", user.ID)
	}

	var tickets []models.Ticket
	if err := query.Find(&tickets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to list tickets"})
	}

	ids := make([]uint, 0, len(tickets)*2)
	for _, t := range tickets {
		ids = append(ids, t.CreatorID)
		if t.AssigneeID != nil {
			ids = append(ids, *t.AssigneeID)
		}
	}
	snapshots, err := s.userSnapshots(ids)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load ticket users"})
	}

	out := make([]models.TicketWithUsers, len(tickets))
	for i, t := range tickets {
		decorated := models.TicketWithUsers{Ticket: t, Creator: snapshots[t.CreatorID]}
		if t.AssigneeID != nil {
			if snap, ok := snapshots[*t.AssigneeID]; ok {
				decorated.Assignee = &snap
			}
		}
		out[i] = decorated
	}
	return c.JSON(out)
}

// GetTicket returns one ticket with its ordered message thread, each entry
// decorated with a sender snapshot.
func (s *TicketService) GetTicket(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid ticket id"})
	}

	var ticket models.Ticket
	if err := s.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ticket not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load ticket"})
	}

	if !CanAccessTicket(user.Role, ticket.Type, ticket.CreatorID == user.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "you cannot view this ticket"})
	}

	var messages []models.TicketMessage
	if err := s.DB.Where("ticket_id = ?", ticket.ID).Order("created_at ASC").Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load messages"})
	}

	senderIDs := make([]uint, len(messages))
	for i, m := range messages {
		senderIDs[i] = m.SenderID
	}
	snapshots, err := s.userSnapshots(senderIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load senders"})
	}

	detail := models.TicketDetail{Ticket: ticket, Messages: make([]models.MessageWithSender, len(messages))}
	for i, m := range messages {
		detail.Messages[i] = models.MessageWithSender{TicketMessage: m, Sender: snapshots[m.SenderID]}
	}
	return c.JSON(detail)
}

type updateTicketRequest struct {
	Status     *models.TicketStatus `json:"status"`
	AssigneeID *uint                `json:"assigneeId"`
}

// UpdateTicket lets staff move a ticket between open, pending and closed
// and hand it to an assignee. Route registration guards this with the
// staff middleware.
func (s *TicketService) UpdateTicket(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid ticket id"})
	}

	var req updateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	var ticket models.Ticket
	if err := s.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ticket not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load ticket"})
	}

	if req.Status != nil {
		if !models.ValidTicketStatus(*req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "status must be open, pending or closed"})
		}
		ticket.Status = *req.Status
	}
	if req.AssigneeID != nil {
		var assignee models.User
		if err := s.DB.First(&assignee, *req.AssigneeID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "assignee not found"})
		}
		ticket.AssigneeID = req.AssigneeID
	}

	if err := s.DB.Save(&ticket).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update ticket"})
	}
	return c.JSON(ticket)
}

type addMessageRequest struct {
	Content string `json:"content"`
}

// AddMessage appends to a ticket's thread after the access check. A denied
// caller gets 403 and no row is written.
func (s *TicketService) AddMessage(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid ticket id"})
	}

	var ticket models.Ticket
	if err := s.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ticket not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load ticket"})
	}

	if !CanAccessTicket(user.Role, ticket.Type, ticket.CreatorID == user.ID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "you cannot post to this ticket"})
	}

	var req addMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "content is required"})
	}

	message := models.TicketMessage{
		TicketID: ticket.ID,
		SenderID: user.ID,
		Content:  req.Content,
	}
	if err := s.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to save message"})
	}

	return c.Status(fiber.StatusCreated).JSON(models.MessageWithSender{
		TicketMessage: message,
		Sender:        user.Snapshot(),
	})
}

// userSnapshots loads identity snapshots for a set of user ids in one query.
func (s *TicketService) userSnapshots(ids []uint) (map[uint]models.Snapshot, error) {
	out := make(map[uint]models.Snapshot, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := s.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].ID] = users[i].Snapshot()
	}
	return out, nil
}
