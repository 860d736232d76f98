package routes

import (
	"staffclock/internal/adapters/http/handlers"
	"staffclock/internal/adapters/http/middleware"
	"staffclock/internal/adapters/persistence/repositories"
	"staffclock/internal/config"
	"staffclock/internal/core/services"
	"staffclock/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, photoStore *storage.PhotoStore) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	payrollRepo := repositories.NewPayrollRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	employeeService := services.NewEmployeeService(userRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, settingsRepo)
	payrollService := services.NewPayrollService(payrollRepo, attendanceRepo, userRepo, settingsRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, photoStore)
	payrollHandler := handlers.NewPayrollHandler(payrollService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate-limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Attendance routes (authenticated)
	attendanceRoutes := apiV1.Group("/attendance")
	attendanceRoutes.Use(middleware.AuthMiddleware(cfg))
	setupAttendanceRoutes(attendanceRoutes, attendanceHandler)

	// Employee management routes (admin only)
	employeeRoutes := apiV1.Group("/employees")
	employeeRoutes.Use(middleware.AuthMiddleware(cfg))
	employeeRoutes.Use(middleware.AdminOnly())
	setupEmployeeRoutes(employeeRoutes, employeeHandler)

	// Payroll routes (admin only)
	payrollRoutes := apiV1.Group("/payroll")
	payrollRoutes.Use(middleware.AuthMiddleware(cfg))
	payrollRoutes.Use(middleware.AdminOnly())
	setupPayrollRoutes(payrollRoutes, payrollHandler)

	// Settings routes (read for all, write for admin)
	settingsRoutes := apiV1.Group("/settings")
	settingsRoutes.Use(middleware.AuthMiddleware(cfg))
	settingsRoutes.Get("/", settingsHandler.Get)
	settingsRoutes.Put("/", middleware.AdminOnly(), settingsHandler.Update)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/me", dashboardHandler.Me)
	dashboardRoutes.Get("/admin", middleware.AdminOnly(), dashboardHandler.Admin)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupAttendanceRoutes configures attendance routes
func setupAttendanceRoutes(router fiber.Router, handler *handlers.AttendanceHandler) {
	// Employee routes
	router.Get("/today", handler.Today)
	router.Post("/clock-in", handler.ClockIn)
	router.Post("/:id/clock-out", handler.ClockOut)
	router.Get("/my", handler.MyLogs)
	router.Post("/photo", handler.UploadPhoto)

	// Admin gallery view
	router.Get("/logs", middleware.AdminOnly(), handler.AllLogs)
}

// setupEmployeeRoutes configures employee management routes (admin only)
func setupEmployeeRoutes(router fiber.Router, handler *handlers.EmployeeHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupPayrollRoutes configures payroll routes (admin only)
func setupPayrollRoutes(router fiber.Router, handler *handlers.PayrollHandler) {
	router.Get("/", handler.List)
	router.Post("/generate", handler.Generate)
	router.Post("/:id/paid", handler.MarkPaid)
}
