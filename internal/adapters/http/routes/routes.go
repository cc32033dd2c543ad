package routes

import (
	"time"

	"hdb-bto-portal/internal/adapters/http/handlers"
	"hdb-bto-portal/internal/adapters/http/middleware"
	"hdb-bto-portal/internal/adapters/persistence/repositories"
	"hdb-bto-portal/internal/config"
	"hdb-bto-portal/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	registrationRepo := repositories.NewRegistrationRepository(db)
	enquiryRepo := repositories.NewEnquiryRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)

	// Initialize services
	inventoryService := services.NewInventoryService(projectRepo, userRepo)
	scheduleService := services.NewScheduleService(projectRepo, userRepo, registrationRepo)
	applicationService := services.NewApplicationService(userRepo, projectRepo, inventoryService, scheduleService, log)
	projectService := services.NewProjectService(projectRepo, scheduleService, log)
	registrationService := services.NewRegistrationService(registrationRepo, projectRepo, userRepo, scheduleService, log)
	enquiryService := services.NewEnquiryService(enquiryRepo, projectRepo, scheduleService)
	reportService := services.NewReportService(userRepo, projectRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, refreshTokenRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService, inventoryService, userService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	enquiryHandler := handlers.NewEnquiryHandler(enquiryService, userService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)

	// Profile routes (authenticated users)
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	profileRoutes.Get("/", userHandler.GetProfile)
	profileRoutes.Put("/password", userHandler.ChangePassword)

	// Project routes
	projectRoutes := apiV1.Group("/projects")
	projectRoutes.Use(middleware.AuthMiddleware(cfg))
	projectRoutes.Get("/", middleware.CacheControl(30*time.Second), projectHandler.List)
	projectRoutes.Get("/mine", middleware.ManagerOnly(), projectHandler.ListMine)
	projectRoutes.Get("/:id", projectHandler.Get)
	projectRoutes.Get("/:id/availability", projectHandler.Availability)
	projectRoutes.Post("/", middleware.ManagerOnly(), projectHandler.Create)
	projectRoutes.Put("/:id", middleware.ManagerOnly(), projectHandler.Update)
	projectRoutes.Put("/:id/visibility", middleware.ManagerOnly(), projectHandler.ToggleVisibility)
	projectRoutes.Delete("/:id", middleware.ManagerOnly(), projectHandler.Delete)

	// Application routes
	applicationRoutes := apiV1.Group("/applications")
	applicationRoutes.Use(middleware.AuthMiddleware(cfg))
	applicationRoutes.Post("/", middleware.ApplicantSide(), applicationHandler.Apply)
	applicationRoutes.Post("/withdrawal", middleware.ApplicantSide(), applicationHandler.RequestWithdrawal)
	applicationRoutes.Get("/", middleware.StaffOnly(), applicationHandler.List)
	applicationRoutes.Put("/:nric/approve", middleware.ManagerOnly(), applicationHandler.Approve)
	applicationRoutes.Put("/:nric/reject", middleware.ManagerOnly(), applicationHandler.Reject)
	applicationRoutes.Put("/:nric/withdrawal/approve", middleware.ManagerOnly(), applicationHandler.ApproveWithdrawal)
	applicationRoutes.Put("/:nric/withdrawal/reject", middleware.ManagerOnly(), applicationHandler.RejectWithdrawal)
	applicationRoutes.Put("/:nric/book", middleware.OfficerOnly(), applicationHandler.Book)

	// Officer registration routes
	registrationRoutes := apiV1.Group("/registrations")
	registrationRoutes.Use(middleware.AuthMiddleware(cfg))
	registrationRoutes.Post("/", middleware.OfficerOnly(), registrationHandler.Register)
	registrationRoutes.Get("/mine", middleware.OfficerOnly(), registrationHandler.ListMine)
	registrationRoutes.Get("/project/:id", middleware.ManagerOnly(), registrationHandler.ListByProject)
	registrationRoutes.Put("/:id/approve", middleware.ManagerOnly(), registrationHandler.Approve)
	registrationRoutes.Put("/:id/reject", middleware.ManagerOnly(), registrationHandler.Reject)

	// Enquiry routes
	enquiryRoutes := apiV1.Group("/enquiries")
	enquiryRoutes.Use(middleware.AuthMiddleware(cfg))
	enquiryRoutes.Post("/", enquiryHandler.Submit)
	enquiryRoutes.Get("/mine", enquiryHandler.ListMine)
	enquiryRoutes.Get("/handled", middleware.StaffOnly(), enquiryHandler.ListHandled)
	enquiryRoutes.Put("/:id", enquiryHandler.Edit)
	enquiryRoutes.Delete("/:id", enquiryHandler.Delete)
	enquiryRoutes.Put("/:id/reply", middleware.StaffOnly(), enquiryHandler.Reply)

	// Report routes
	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	reportRoutes.Get("/receipt/:nric", middleware.OfficerOnly(), reportHandler.Receipt)
	reportRoutes.Get("/bookings", middleware.ManagerOnly(), reportHandler.Bookings)
}
