package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/slotpilot/bot-dashboard-backend/internal/botclient"
	"github.com/slotpilot/bot-dashboard-backend/internal/config"
	"github.com/slotpilot/bot-dashboard-backend/internal/database"
	"github.com/slotpilot/bot-dashboard-backend/internal/handlers"
	"github.com/slotpilot/bot-dashboard-backend/internal/hub"
	"github.com/slotpilot/bot-dashboard-backend/internal/repositories"
	"github.com/slotpilot/bot-dashboard-backend/internal/scheduler"
	"github.com/slotpilot/bot-dashboard-backend/internal/services"
	"github.com/slotpilot/bot-dashboard-backend/internal/store"
	"github.com/slotpilot/bot-dashboard-backend/pkg/logger"
	"github.com/slotpilot/bot-dashboard-backend/pkg/metrics"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(cfg.Logger.Level, cfg.Logger.Format)

	// Connect to database and apply migrations
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
		appLogger.WithError(err).Fatal("Failed to run migrations")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	proxyRepo := repositories.NewProxyRepository(db)
	webhookRepo := repositories.NewWebhookRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	preferenceRepo := repositories.NewPreferenceRepository(db)

	// In-memory state and the dashboard fan-out hub
	statusStore := store.NewStatusStore()
	logBuffer := store.NewLogBuffer(store.DefaultLogCapacity)
	notificationStore := store.NewNotificationStore(store.DefaultNotificationCapacity)

	streamHub := hub.New(appLogger)
	go streamHub.Run()

	appMetrics := metrics.NewMetrics()

	// Services
	limiter := services.NewLoginLimiter(
		cfg.Auth.LockoutAttempts,
		cfg.Auth.LockoutWindow,
		cfg.Auth.LockoutDuration,
	)
	authService := services.NewAuthService(userRepo, limiter, &cfg.Auth, appLogger)
	notificationService := services.NewNotificationService(notificationStore, notificationRepo, userRepo, appLogger)
	webhookService := services.NewWebhookService(webhookRepo, appLogger)
	auditService := services.NewAuditService(auditRepo, appLogger)
	accountService := services.NewAccountService(accountRepo, appLogger)
	appointmentService := services.NewAppointmentService(appointmentRepo, appLogger)
	proxyService := services.NewProxyService(proxyRepo, appLogger)

	agentClient := botclient.NewClient(&cfg.Agent, appLogger)
	botService := services.NewBotService(
		agentClient, statusStore, logBuffer, streamHub,
		notificationService, webhookService, appMetrics, appLogger,
	)
	dropdownService := services.NewDropdownService(agentClient, appLogger)

	// Push channel: subscribe to the agent's event stream
	subscriber := botclient.NewSubscriber(&cfg.Agent, botService, appLogger)
	subscriber.OnReconnect(appMetrics.RecordStreamReconnect)

	streamCtx, stopStream := context.WithCancel(context.Background())
	defer stopStream()
	go subscriber.Run(streamCtx)

	// Pull channel and housekeeping
	cronScheduler := scheduler.NewCronScheduler(botService, auditService, cfg, appMetrics, appLogger)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// HTTP surface
	router := handlers.NewRouter(handlers.RouterDeps{
		Config: cfg,

		Auth:          handlers.NewAuthHandler(authService, notificationService, auditService, appLogger),
		Bot:           handlers.NewBotHandler(botService, auditService, appLogger),
		Accounts:      handlers.NewAccountHandler(accountService, auditService, appLogger),
		Appointments:  handlers.NewAppointmentHandler(appointmentService, auditService, appLogger),
		Proxies:       handlers.NewProxyHandler(proxyService, auditService, appLogger),
		Webhooks:      handlers.NewWebhookHandler(webhookService, auditService, appLogger),
		Audit:         handlers.NewAuditHandler(auditService, appLogger),
		Dropdown:      handlers.NewDropdownHandler(dropdownService, auditService, appLogger),
		Notifications: handlers.NewNotificationHandler(notificationService, appLogger),
		Preferences:   handlers.NewPreferenceHandler(preferenceRepo, appLogger),
		Health:        handlers.NewHealthHandler(db, statusStore, streamHub, appLogger, version),
		WS:            handlers.NewWSHandler(streamHub, authService, appMetrics, appLogger, cfg.Server.AllowedOrigins),

		AuthService: authService,
		Metrics:     appMetrics,
		Logger:      appLogger,
	})

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		appLogger.WithField("addr", serverAddr).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	stopStream()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
