package services

import (
	"fmt"
	"log"
	"path/filepath"

	"clan-hub-system/middleware"
	"clan-hub-system/models"
	"clan-hub-system/utils"
	"clan-hub-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type LogService struct {
	DB        *gorm.DB
	Announcer *workers.Announcer
}

func NewLogService(db *gorm.DB, announcer *workers.Announcer) *LogService {
	return &LogService{DB: db, Announcer: announcer}
}

// ListWarLogs returns all crew-war records, newest first.
func (s *LogService) ListWarLogs(c *fiber.Ctx) error {
	var logs []models.WarLog
	if err := s.DB.Order("created_at DESC").Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to list war logs"})
	}
	return c.JSON(logs)
}

type createWarLogRequest struct {
	Type         models.WarMatchType `json:"type"`
	OpponentCrew string              `json:"opponentCrew"`
	Result       models.WarResult    `json:"result"`
	Score        string              `json:"score"`
	ProofImage   *string             `json:"proofImage"`
}

// CreateWarLog records one crew battle and announces it on the clan's
// Discord channel when a webhook is configured.
func (s *LogService) CreateWarLog(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req createWarLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if !models.ValidWarMatchType(req.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "type must be 2v2, 3v3, 6v6 or public"})
	}
	if req.OpponentCrew == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "opponentCrew is required"})
	}
	if !models.ValidWarResult(req.Result) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "result must be win or loss"})
	}
	if req.Score == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "score is required"})
	}

	warLog := models.WarLog{
		Type:         req.Type,
		OpponentCrew: req.OpponentCrew,
		Result:       req.Result,
		Score:        req.Score,
		ProofImage:   req.ProofImage,
		LoggedBy:     user.ID,
	}
	if err := s.DB.Create(&warLog).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to save war log"})
	}

	s.Announcer.Publish(fmt.Sprintf("⚔️ %s vs %s: %s (%s), logged by %s",
		warLog.Type, warLog.OpponentCrew, warLog.Result, warLog.Score, user.Username))

	return c.Status(fiber.StatusCreated).JSON(warLog)
}

// ListPvpLogs returns all 1v1 duel records, newest first.
func (s *LogService) ListPvpLogs(c *fiber.Ctx) error {
	var logs []models.PvpLog
	if err := s.DB.Order("created_at DESC").Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to list pvp logs"})
	}
	return c.JSON(logs)
}

type createPvpLogRequest struct {
	WinnerID   uint    `json:"winnerId"`
	LoserName  string  `json:"loserName"`
	Score      string  `json:"score"`
	ProofImage *string `json:"proofImage"`
}

// CreatePvpLog records one duel. The winner must be a clan member; the
// loser is kept as free text since outsiders can be dueled too.
func (s *LogService) CreatePvpLog(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req createPvpLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}
	if req.WinnerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "winnerId is required"})
	}
	var winner models.User
	if err := s.DB.First(&winner, req.WinnerID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "winnerId is not a known user"})
	}
	if req.LoserName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "loserName is required"})
	}
	if req.Score == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "score is required"})
	}

	pvpLog := models.PvpLog{
		WinnerID:   req.WinnerID,
		LoserName:  req.LoserName,
		Score:      req.Score,
		ProofImage: req.ProofImage,
		LoggedBy:   user.ID,
	}
	if err := s.DB.Create(&pvpLog).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to save pvp log"})
	}
	return c.Status(fiber.StatusCreated).JSON(pvpLog)
}

// UploadProof stores a proof screenshot and returns its public URL for use
// in a subsequent log submission. Goes to R2 when configured, the local
// uploads dir otherwise.
func (s *LogService) UploadProof(c *fiber.Ctx) error {
	file, err := c.FormFile("proof")
	if err != nil || file.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "proof file is required"})
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".png"
	}
	base := slug.Make(c.FormValue("label", "proof"))
	key := fmt.Sprintf("proof/%s-%s%s", base, uuid.NewString(), ext)

	if utils.R2Enabled() {
		url, err := utils.UploadFileToR2(file, key)
		if err != nil {
			log.Printf("❌ [UPLOADS] R2 upload failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to upload proof"})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	}

	destPath := utils.GetUploadPath(key)
	if err := utils.SaveFile(file, destPath); err != nil {
		log.Printf("❌ [UPLOADS] local save failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to upload proof"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": "/uploads/" + key})
}
