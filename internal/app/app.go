package app

import (
	"context"
	"fmt"

	"hirelink_backend/database"
	"hirelink_backend/internal/config"
	"hirelink_backend/internal/email"
	"hirelink_backend/internal/handlers"
	"hirelink_backend/internal/logger"
	"hirelink_backend/internal/middleware"
	"hirelink_backend/internal/repositories"
	"hirelink_backend/internal/routes"
	"hirelink_backend/internal/services"
	"hirelink_backend/internal/validator"
	"hirelink_backend/internal/workers"
	"hirelink_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, handlers, the websocket
// manager and the background workers, then returns the configured gin
// engine. ctx bounds the lifetime of the manager and the workers.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	wsManager := ws.NewWebSocketManager()
	go wsManager.Run(ctx)
	wsHandler := ws.NewWebSocketHandler(wsManager)

	serviceContainer := initializeServices(cfg, gormDB, wsManager)
	appHandlers := initializeHandlers(serviceContainer)

	startWorkers(ctx, gormDB, serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, emitter services.Emitter) *services.ServiceContainer {
	emailProvider := initializeEmailProvider(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	candidateRepo := repositories.NewCandidateRepository(gormDB)
	recruiterRepo := repositories.NewRecruiterRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	interviewRepo := repositories.NewInterviewRepository(gormDB)
	feedbackRepo := repositories.NewFeedbackRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	notificationService := services.NewNotificationService(notificationRepo, candidateRepo, recruiterRepo, emitter)
	notifierService := services.NewNotifierService(notificationService, emailProvider, emitter, cfg.App.BaseURL)
	authService := services.NewAuthService(userRepo, candidateRepo, recruiterRepo)
	jobService := services.NewJobService(jobRepo, recruiterRepo)
	interviewService := services.NewInterviewService(interviewRepo, candidateRepo, recruiterRepo, jobRepo, notifierService)
	feedbackService := services.NewFeedbackService(feedbackRepo, interviewRepo, recruiterRepo, notifierService)

	return &services.ServiceContainer{
		AuthService:         authService,
		JobService:          jobService,
		InterviewService:    interviewService,
		FeedbackService:     feedbackService,
		NotificationService: notificationService,
		NotifierService:     notifierService,
		EmailProvider:       emailProvider,
	}
}

// initializeEmailProvider falls back to a mock when SMTP is not
// configured, so local development works without a mail server.
func initializeEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, outgoing email is mocked")
		return &MockEmailProvider{}
	}

	provider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:         cfg.Email.SMTPHost,
		Port:         cfg.Email.SMTPPort,
		Username:     cfg.Email.SMTPUsername,
		Password:     cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
		UseTLS:       cfg.Email.UseTLS,
		TemplatesDir: cfg.Email.TemplatesDir,
	})
	if err != nil {
		logger.Fatal("Failed to initialize SMTP provider", "error", err)
	}
	return provider
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		JobHandler:          handlers.NewJobHandler(baseHandler, container.JobService),
		InterviewHandler:    handlers.NewInterviewHandler(baseHandler, container.InterviewService),
		FeedbackHandler:     handlers.NewFeedbackHandler(baseHandler, container.FeedbackService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
	}
}

func startWorkers(ctx context.Context, gormDB *gorm.DB, container *services.ServiceContainer) {
	interviewRepo := repositories.NewInterviewRepository(gormDB)

	workers.NewReminderWorker(interviewRepo, container.NotifierService).Start(ctx)
	workers.NewCleanupWorker(container.NotificationService).Start(ctx)
	logger.Info("Background workers started")
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
