package routes

import (
	"fmt"

	"business-hub-backend/internal/access"
	"business-hub-backend/internal/api/handlers"
	"business-hub-backend/internal/api/middleware"
	"business-hub-backend/internal/auth"
	"business-hub-backend/internal/config"
	"business-hub-backend/internal/mail"
	"business-hub-backend/internal/metrics"
	"business-hub-backend/internal/repository"
	"business-hub-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const version = "1.0.0"

// Dependencies overrides collaborators that are otherwise built from config
type Dependencies struct {
	Mailer  mail.Sender
	Metrics *metrics.Metrics
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	return NewRouter(db, cfg, Dependencies{})
}

// NewRouter wires repositories, services and handlers onto a new engine
func NewRouter(db *gorm.DB, cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Mailer == nil {
		deps.Mailer = mail.NewSender(cfg)
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	policy, err := access.NewPolicy()
	if err != nil {
		return nil, fmt.Errorf("failed to load access policy: %w", err)
	}

	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.Metrics(deps.Metrics))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	memberRepo := repository.NewCompanyMemberRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Initialize auth
	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.AppName)
	hasher := auth.NewHasher(cfg.BcryptCost)
	authService := auth.NewService(cfg, userRepo, memberRepo, codec, hasher)
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService, memberRepo)

	// Initialize services
	userService := service.NewUserService(userRepo, hasher, validator)
	companyService := service.NewCompanyService(db, companyRepo, memberRepo, policy, deps.Metrics, validator)
	invitationService := service.NewInvitationService(db, cfg, codec, userRepo, companyRepo, memberRepo, policy, deps.Mailer, deps.Metrics, validator)
	projectService := service.NewProjectService(projectRepo, policy, validator)
	taskService := service.NewTaskService(taskRepo, projectRepo, memberRepo, policy, validator)
	saleService := service.NewSaleService(saleRepo, policy, validator)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, version)
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService, invitationService)
	projectHandler := handlers.NewProjectHandler(projectService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)
	saleHandler := handlers.NewSaleHandler(saleService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(cfg.APIPrefix)

	// Public routes
	api.POST("/users/signup", userHandler.Signup)
	api.POST("/users/login", authHandler.Login)
	api.GET("/company/join", authMiddleware.OptionalAuth(), companyHandler.JoinByInvitation)

	// Everything else requires a session; the membership is re-read per request
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth(), authMiddleware.LoadMembership())
	{
		users := protected.Group("/users")
		{
			users.GET("/me", userHandler.Me)
			users.PATCH("/me", userHandler.UpdateMe)
		}

		company := protected.Group("/company")
		{
			company.POST("/create", companyHandler.CreateCompany)
			company.GET("/invitation/link", companyHandler.InvitationLink)
			company.GET("/invitation/join", companyHandler.JoinByLink)
			company.POST("/invite/:email", companyHandler.SendInvitation)
			company.GET("/company/members", companyHandler.ListMembers)
			company.GET("/:id", companyHandler.GetCompany)
			company.PUT("/:id", companyHandler.UpdateCompany)
		}

		projects := protected.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/tasks", projectHandler.GetProjectTasks)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.POST("/:id/members", taskHandler.AddTaskMember)
			tasks.DELETE("/:id/members/:user_id", taskHandler.RemoveTaskMember)
		}

		sales := protected.Group("/sales")
		{
			sales.POST("", saleHandler.CreateSale)
			sales.GET("", saleHandler.ListSales)
			sales.GET("/:id", saleHandler.GetSale)
			sales.PUT("/:id", saleHandler.UpdateSale)
			sales.PATCH("/:id/status", saleHandler.UpdateSaleStatus)
		}
	}

	return router, nil
}
