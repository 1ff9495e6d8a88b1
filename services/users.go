package services

import (
	"errors"
	"log"

	"clan-hub-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// ListUsers returns every clan member. Admin only (guarded at the route).
func (s *UserService) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := s.DB.Order("id ASC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to list users"})
	}
	return c.JSON(users)
}

type updateUserRequest struct {
	Role models.Role `json:"role"`
}

// UpdateUserRole reassigns a user's role within the closed role set.
func (s *UserService) UpdateUserRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid user id"})
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if !models.ValidRole(req.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown role"})
	}

	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load user"})
	}

	user.Role = req.Role
	if err := s.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to update user"})
	}

	log.Printf("👑 [ADMIN] %s is now %s", user.Username, user.Role)
	return c.JSON(user)
}
