package main

import (
	"log"

	"clan-hub-system/models"

	"gorm.io/gorm"
)

// seedDatabase makes sure the five war-team tiers exist and, on a fresh
// database, creates bootstrap users and sample data. Safe to run on every
// startup.
func seedDatabase(db *gorm.DB) error {
	var teamCount int64
	if err := db.Model(&models.WarTeam{}).Count(&teamCount).Error; err != nil {
		return err
	}
	if teamCount == 0 {
		log.Println("Seeding war teams...")
		for _, tier := range models.WarTeamTiers {
			if err := db.Create(&models.WarTeam{Tier: tier, MemberIDs: []int64{}}).Error; err != nil {
				return err
			}
		}
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		log.Println("Seeding bootstrap users...")
		admin := models.User{
			Username:  "AdminUser",
			DiscordID: "123456789",
			Avatar:    "https://github.com/shadcn.png",
			Role:      models.RoleAdmin,
		}
		guest := models.User{
			Username:  "NewPirate",
			DiscordID: "987654321",
			Avatar:    "https://github.com/shadcn.png",
			Role:      models.RoleGuest,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		if err := db.Create(&guest).Error; err != nil {
			return err
		}

		log.Println("Seeding sample tickets and war logs...")
		tickets := []models.Ticket{
			{Type: models.TicketTryout, Status: models.StatusOpen, CreatorID: guest.ID,
				Content: "I want to join the crew! I have 5M bounty."},
			{Type: models.TicketWarRequest, Status: models.StatusPending, CreatorID: guest.ID,
				Content: "Requesting a 3v3 war against Red Haired Pirates."},
		}
		if err := db.Create(&tickets).Error; err != nil {
			return err
		}

		p1 := "https://placehold.co/600x400/1e293b/white?text=Victory+Proof"
		p2 := "https://placehold.co/600x400/1e293b/white?text=Defeat+Proof"
		warLogs := []models.WarLog{
			{Type: models.War3v3, OpponentCrew: "Marine Hunters", Result: models.ResultWin,
				Score: "3-1", ProofImage: &p1, LoggedBy: admin.ID},
			{Type: models.War2v2, OpponentCrew: "Straw Hats", Result: models.ResultLoss,
				Score: "1-2", ProofImage: &p2, LoggedBy: admin.ID},
		}
		if err := db.Create(&warLogs).Error; err != nil {
			return err
		}
	}

	return nil
}
