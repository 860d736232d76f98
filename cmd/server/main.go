package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"staffclock/internal/adapters/http/middleware"
	"staffclock/internal/adapters/http/routes"
	"staffclock/internal/adapters/persistence/models"
	"staffclock/internal/config"
	"staffclock/internal/core/services"
	"staffclock/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"

	_ "staffclock/docs" // Swagger docs
)

// @title StaffClock API
// @version 1.0
// @description Photo-verified employee attendance and monthly payroll API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@staffclock.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.staffclock.io
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

	// Seed admin user and default settings
	if err := config.SeedData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Photo store is optional; without a bucket, photo upload responds 503
	var photoStore *storage.PhotoStore
	if cfg.Storage.Bucket != "" {
		photoStore, err = storage.NewPhotoStore(context.Background(), cfg.Storage.Bucket, cfg.Storage.CredentialsFile)
		if err != nil {
			log.Fatalf("❌ Failed to initialize photo store: %v", err)
		}
		defer photoStore.Close()
		log.Printf("✅ Photo store ready (bucket: %s)", cfg.Storage.Bucket)
	} else {
		log.Println("⚠️ No GCS bucket configured, photo upload disabled")
	}

	// Start auto-checkout sweeper
	autoCheckout := services.NewAutoCheckoutService(db)
	autoCheckout.Start()
	defer autoCheckout.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "StaffClock API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg, photoStore)

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
