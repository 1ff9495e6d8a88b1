package services

import (
	"errors"
	"log"
	"strconv"

	"clan-hub-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TeamService struct {
	DB *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{DB: db}
}

// ListTeams returns the five fixed tier rows in seeded order (Z first).
func (s *TeamService) ListTeams(c *fiber.Ctx) error {
	var teams []models.WarTeam
	if err := s.DB.Order("id ASC").Find(&teams).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to list war teams"})
	}
	return c.JSON(teams)
}

type updateTeamRequest struct {
	// Clients send ids as numbers but some send strings; both are coerced.
	MemberIDs []any `json:"memberIds"`
}

// UpdateTeam replaces a tier's full member list. Incremental add/remove is
// a client-side convenience; the wire always carries the whole list. Every
// non-staff user in the new list is promoted to war_fighter; nobody is
// demoted on removal.
func (s *TeamService) UpdateTeam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid team id"})
	}

	var req updateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	memberIDs, err := coerceMemberIDs(req.MemberIDs)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "memberIds must be numeric user ids"})
	}

	var team models.WarTeam
	if err := s.DB.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "war team not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load war team"})
	}

	team.MemberIDs = memberIDs
	if err := s.DB.Save(&team).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update war team"})
	}

	// Promotion runs after the membership write; there is no compensation
	// if it fails halfway.
	if err := s.promoteMembers(memberIDs); err != nil {
		log.Printf("⚠️ [TEAMS] promotion after tier %s update failed: %v", team.Tier, err)
	}

	log.Printf("⚔️ [TEAMS] tier %s roster replaced (%d members)", team.Tier, len(memberIDs))
	return c.JSON(team)
}

// promoteMembers sets role war_fighter on every listed user. Staff keep
// their staff role.
func (s *TeamService) promoteMembers(memberIDs []int64) error {
	if len(memberIDs) == 0 {
		return nil
	}
	return s.DB.Model(&models.User{}).
		Where("id IN ? AND role NOT IN ?", memberIDs, []models.Role{models.RoleAdmin, models.RoleModerator, models.RoleWarFighter}).
		Update("role", models.RoleWarFighter).Error
}

// coerceMemberIDs turns a loosely typed JSON array into de-duplicated
// numeric ids, keeping first-occurrence order.
func coerceMemberIDs(raw []any) ([]int64, error) {
	out := make([]int64, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for _, v := range raw {
		var id int64
		switch n := v.(type) {
		case float64:
			id = int64(n)
		case int:
			id = int64(n)
		case int64:
			id = n
		case string:
			parsed, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, err
			}
			id = parsed
		default:
			return nil, errors.New("member id is not numeric")
		}
		if id <= 0 {
			return nil, errors.New("member id must be positive")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}
