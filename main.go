package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"clan-hub-system/handlers"
	"clan-hub-system/middleware"
	"clan-hub-system/models"
	"clan-hub-system/services"
	"clan-hub-system/utils"
	"clan-hub-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // proof screenshots
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PATCH,OPTIONS,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Ticket{},
		&models.TicketMessage{},
		&models.WarLog{},
		&models.PvpLog{},
		&models.WarTeam{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := seedDatabase(db); err != nil {
		log.Fatal("failed to seed database:", err)
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}
	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	// Cookie session, 30-day expiry, resolved into a request-scoped user
	// by middleware.UserContext.
	sessions := session.New(session.Config{
		Expiration:     30 * 24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   os.Getenv("ENV") == "production",
	})
	app.Use(middleware.UserContext(sessions, db))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	announcer := workers.NewAnnouncer(os.Getenv("DISCORD_WEBHOOK_URL"))
	announcer.Start(ctx)

	authService := services.NewAuthService(db, sessions)
	ticketService := services.NewTicketService(db)
	teamService := services.NewTeamService(db)
	logService := services.NewLogService(db, announcer)
	userService := services.NewUserService(db)

	logService.StartWarDigestScheduler()

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupTicketRoutes(app, ticketService)
	handlers.SetupTeamRoutes(app, teamService)
	handlers.SetupLogRoutes(app, logService)
	handlers.SetupAdminRoutes(app, userService)

	app.Static("/uploads", "./uploads")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5200"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
