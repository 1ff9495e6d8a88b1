package services

import (
	"fmt"
	"log"
	"time"

	"clan-hub-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartWarDigestScheduler posts a weekly win/loss tally to the clan's
// Discord channel. No-op when no webhook is configured.
func (s *LogService) StartWarDigestScheduler() {
	if !s.Announcer.Enabled() {
		log.Println("⚠️  No Discord webhook configured, war digest disabled")
		return
	}

	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(7*24*time.Hour),
		gocron.NewTask(func() {
			since := time.Now().AddDate(0, 0, -7)

			var wins, losses int64
			if err := s.DB.Model(&models.WarLog{}).
				Where("result = ? AND created_at >= ?", models.ResultWin, since).
				Count(&wins).Error; err != nil {
				log.Printf("[Digest] DB error: %v", err)
				return
			}
			if err := s.DB.Model(&models.WarLog{}).
				Where("result = ? AND created_at >= ?", models.ResultLoss, since).
				Count(&losses).Error; err != nil {
				log.Printf("[Digest] DB error: %v", err)
				return
			}

			if wins == 0 && losses == 0 {
				return
			}
			s.Announcer.Publish(fmt.Sprintf("📊 Weekly war digest: %d wins, %d losses", wins, losses))
		}),
	)
}
