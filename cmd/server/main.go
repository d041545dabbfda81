package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"maintdesk/internal/adapters/http/middleware"
	"maintdesk/internal/adapters/http/routes"
	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/config"
	"maintdesk/internal/core/access"
	"maintdesk/internal/pkg/events"

	"github.com/gofiber/fiber/v2"

	_ "maintdesk/docs" // Swagger docs
)

// @title MaintDesk API
// @version 1.0
// @description Maintenance management dashboard API: issues, work orders, part requests
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@maintdesk.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.maintdesk.example.com
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed development data
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Event publisher (optional, no broker means events are dropped)
	var publisher events.Publisher
	if cfg.MQ.URL != "" {
		rabbit, err := events.NewRabbitPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Printf("⚠️ Warning: event broker unavailable: %v", err)
			publisher = events.NopPublisher{}
		} else {
			publisher = rabbit
			defer rabbit.Close()
		}
	} else {
		publisher = events.NopPublisher{}
	}

	// Access gate for page navigation
	gate := access.NewGate(access.DefaultPolicy(), cfg.JWT.Secret)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MaintDesk API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes; the returned cron service runs the daily jobs
	cronService := routes.Setup(app, routes.Deps{
		Config:    cfg,
		DB:        db,
		Publisher: publisher,
		Gate:      gate,
	})
	cronService.Start()
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
