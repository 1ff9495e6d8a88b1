package workers

import (
	"context"
	"log"

	"github.com/gtuk/discordwebhook"
)

// Announcer pushes clan announcements to a Discord webhook from a single
// background goroutine. Publish never blocks a request handler: when the
// queue is full or no webhook is configured the message is dropped with a
// log line.
type Announcer struct {
	webhookURL string
	username   string
	queue      chan string
}

func NewAnnouncer(webhookURL string) *Announcer {
	return &Announcer{
		webhookURL: webhookURL,
		username:   "Clan Hub",
		queue:      make(chan string, 64),
	}
}

// Enabled reports whether a webhook URL was configured.
func (a *Announcer) Enabled() bool {
	return a != nil && a.webhookURL != ""
}

// Publish queues one announcement.
func (a *Announcer) Publish(content string) {
	if !a.Enabled() {
		return
	}
	select {
	case a.queue <- content:
	default:
		log.Printf("⚠️ [ANNOUNCE] queue full, dropping: %.60s", content)
	}
}

// Start consumes the queue until the context is cancelled.
func (a *Announcer) Start(ctx context.Context) {
	if !a.Enabled() {
		return
	}
	log.Println("🔁 Starting Discord announcement worker…")
	go a.run(ctx)
}

func (a *Announcer) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case content := <-a.queue:
			message := discordwebhook.Message{
				Username: &a.username,
				Content:  &content,
			}
			if err := discordwebhook.SendMessage(a.webhookURL, message); err != nil {
				log.Printf("❌ [ANNOUNCE] webhook send failed: %v", err)
			}
		}
	}
}
