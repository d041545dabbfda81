package routes

import (
	"maintdesk/internal/adapters/http/handlers"
	"maintdesk/internal/adapters/http/middleware"
	"maintdesk/internal/adapters/persistence/repositories"
	"maintdesk/internal/config"
	"maintdesk/internal/core/access"
	"maintdesk/internal/core/domain"
	"maintdesk/internal/core/lifecycle"
	"maintdesk/internal/core/services"
	"maintdesk/internal/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Deps carries the shared infrastructure routes need beyond the database.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Publisher events.Publisher
	Gate      *access.Gate
}

// Setup configures all routes for the application and returns the cron
// service so main can manage its lifecycle.
func Setup(app *fiber.App, deps Deps) *services.CronService {
	db := deps.DB
	cfg := deps.Config

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	issueRepo := repositories.NewIssueRepository(db)
	workOrderRepo := repositories.NewWorkOrderRepository(db)
	partRequestRepo := repositories.NewPartRequestRepository(db)
	machineRepo := repositories.NewMachineRepository(db)
	partRepo := repositories.NewPartRepository(db)
	certificateRepo := repositories.NewCertificateRepository(db)

	// Lifecycle guard, fed by the part request table
	guard := lifecycle.NewGuard(partRequestRepo.StatusesByWorkOrder)

	// Initialize services
	notifyService := services.NewNotificationService(deps.Publisher)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	issueService := services.NewIssueService(issueRepo, machineRepo, guard, notifyService)
	workOrderService := services.NewWorkOrderService(workOrderRepo, issueRepo, userRepo, guard, notifyService)
	partRequestService := services.NewPartRequestService(partRequestRepo, workOrderRepo, partRepo, guard, notifyService)
	assetService := services.NewAssetService(machineRepo, partRepo, certificateRepo, notifyService)
	dashboardService := services.NewDashboardService(db, issueRepo, workOrderRepo, partRequestRepo)
	cronService := services.NewCronService(workOrderRepo, certificateRepo, refreshTokenRepo, notifyService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	issueHandler := handlers.NewIssueHandler(issueService)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderService)
	partRequestHandler := handlers.NewPartRequestHandler(partRequestService)
	assetHandler := handlers.NewAssetHandler(assetService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	pageHandler := handlers.NewPageHandler(deps.Gate)

	// Navigation gate guards every page route; API and swagger routes
	// are skipped inside the middleware.
	app.Use(middleware.NavigationGate(deps.Gate))

	// Health check
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Page routes
	setupPageRoutes(app, pageHandler)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler, issueHandler,
		workOrderHandler, partRequestHandler, assetHandler, dashboardHandler, cfg)

	return cronService
}

// setupPageRoutes configures the navigation endpoints the gate routes
// through. The gate middleware has already decided access; handlers
// only serve page context.
func setupPageRoutes(app *fiber.App, pageHandler *handlers.PageHandler) {
	app.Get(access.LoginPath, pageHandler.Login)
	app.Get(access.RegisterPath, pageHandler.Register)
	app.Get(access.AccessDeniedPath, pageHandler.AccessDenied)

	for _, role := range domain.Roles {
		area := "/" + string(role)
		app.Get(area+"/dashboard", pageHandler.RoleDashboard)
		app.Get(area+"/*", pageHandler.RoleDashboard)
	}
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	issueHandler *handlers.IssueHandler,
	workOrderHandler *handlers.WorkOrderHandler,
	partRequestHandler *handlers.PartRequestHandler,
	assetHandler *handlers.AssetHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler, assetHandler)

	// Issue routes (any authenticated user can report and read)
	issueRoutes := router.Group("/issues")
	issueRoutes.Use(middleware.AuthMiddleware(cfg))
	setupIssueRoutes(issueRoutes, issueHandler)

	// Work order routes
	workOrderRoutes := router.Group("/work-orders")
	workOrderRoutes.Use(middleware.AuthMiddleware(cfg))
	setupWorkOrderRoutes(workOrderRoutes, workOrderHandler)

	// Part request routes
	partRequestRoutes := router.Group("/part-requests")
	partRequestRoutes.Use(middleware.AuthMiddleware(cfg))
	setupPartRequestRoutes(partRequestRoutes, partRequestHandler)

	// Master data routes
	setupAssetRoutes(router, assetHandler, cfg)

	// Dashboard routes
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, assetHandler *handlers.AssetHandler) {
	// Self-service
	router.Patch("/me", handler.UpdateProfile)
	router.Patch("/me/password", handler.ChangePassword)

	// Technician listing for work order assignment
	router.Get("/technicians", middleware.ManagerOrAdmin(), handler.ListTechnicians)

	// Admin-only management
	router.Get("/", middleware.AdminOnly(), handler.ListUsers)
	router.Get("/:id", middleware.AdminOnly(), handler.GetUser)
	router.Patch("/:id/role", middleware.AdminOnly(), handler.SetUserRole)
	router.Patch("/:id/active", middleware.AdminOnly(), handler.SetUserActive)
	router.Delete("/:id", middleware.AdminOnly(), handler.DeleteUser)

	// Certificates of a user (Admin/Manager)
	router.Get("/:id/certificates", middleware.ManagerOrAdmin(), assetHandler.ListUserCertificates)
}

// setupIssueRoutes configures issue routes
func setupIssueRoutes(router fiber.Router, handler *handlers.IssueHandler) {
	router.Post("/", handler.CreateIssue)
	router.Get("/", handler.ListIssues)
	router.Get("/:id", handler.GetIssue)

	// Status changes are role checked again by the lifecycle guard;
	// the route level keeps obviously unauthorized roles out early.
	router.Patch("/:id/status", middleware.RoleMiddleware(
		domain.RoleTechnician, domain.RoleManager, domain.RoleAdmin,
	), handler.TransitionIssue)
	router.Post("/:id/reopen", middleware.ManagerOrAdmin(), handler.ReopenIssue)
}

// setupWorkOrderRoutes configures work order routes
func setupWorkOrderRoutes(router fiber.Router, handler *handlers.WorkOrderHandler) {
	router.Post("/", middleware.ManagerOrAdmin(), handler.CreateWorkOrder)
	router.Get("/", handler.ListWorkOrders)
	router.Get("/overdue", middleware.ManagerOrAdmin(), handler.ListOverdueWorkOrders)
	router.Get("/:id", handler.GetWorkOrder)
	router.Patch("/:id/status", middleware.RoleMiddleware(
		domain.RoleTechnician,
	), handler.TransitionWorkOrder)
}

// setupPartRequestRoutes configures part request routes
func setupPartRequestRoutes(router fiber.Router, handler *handlers.PartRequestHandler) {
	router.Post("/", middleware.RoleMiddleware(domain.RoleTechnician), handler.CreatePartRequest)
	router.Get("/", handler.ListPartRequests)
	router.Get("/:id", handler.GetPartRequest)
	router.Patch("/:id/status", middleware.RoleMiddleware(
		domain.RoleLogistics, domain.RoleManager,
	), handler.TransitionPartRequest)
	router.Delete("/:id", middleware.RoleMiddleware(
		domain.RoleTechnician, domain.RoleAdmin,
	), handler.DeletePartRequest)
}

// setupAssetRoutes configures master data routes
func setupAssetRoutes(router fiber.Router, handler *handlers.AssetHandler, cfg *config.Config) {
	machines := router.Group("/machines")
	machines.Use(middleware.AuthMiddleware(cfg))
	machines.Get("/", handler.ListMachines)
	machines.Get("/:id", handler.GetMachine)
	machines.Post("/", middleware.ManagerOrAdmin(), handler.CreateMachine)
	machines.Patch("/:id", middleware.ManagerOrAdmin(), handler.UpdateMachine)
	machines.Delete("/:id", middleware.AdminOnly(), handler.DeleteMachine)

	parts := router.Group("/parts")
	parts.Use(middleware.AuthMiddleware(cfg))
	parts.Get("/", handler.ListParts)
	parts.Post("/", middleware.RoleMiddleware(domain.RoleLogistics, domain.RoleAdmin), handler.CreatePart)
	parts.Post("/:id/restock", middleware.RoleMiddleware(domain.RoleLogistics, domain.RoleAdmin), handler.RestockPart)
	parts.Delete("/:id", middleware.AdminOnly(), handler.DeletePart)

	certificates := router.Group("/certificates")
	certificates.Use(middleware.AuthMiddleware(cfg))
	certificates.Get("/me", handler.ListMyCertificates)
	certificates.Post("/", middleware.ManagerOrAdmin(), handler.CreateCertificate)
	certificates.Delete("/:id", middleware.AdminOnly(), handler.DeleteCertificate)
}

// setupDashboardRoutes configures per-role dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/admin", middleware.AdminOnly(), handler.AdminDashboard)
	router.Get("/employee", handler.EmployeeDashboard)
	router.Get("/technician", middleware.RoleMiddleware(domain.RoleTechnician, domain.RoleAdmin), handler.TechnicianDashboard)
	router.Get("/manager", middleware.ManagerOrAdmin(), handler.ManagerDashboard)
	router.Get("/logistics", middleware.RoleMiddleware(domain.RoleLogistics, domain.RoleAdmin), handler.LogisticsDashboard)
}
