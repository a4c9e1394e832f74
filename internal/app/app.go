package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"prepvio_backend/internal/auth"
	"prepvio_backend/internal/config"
	"prepvio_backend/internal/database"
	"prepvio_backend/internal/email"
	"prepvio_backend/internal/handlers"
	"prepvio_backend/internal/logger"
	"prepvio_backend/internal/middleware"
	"prepvio_backend/internal/models"
	"prepvio_backend/internal/payment"
	"prepvio_backend/internal/routes"
	"prepvio_backend/internal/sandbox"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/storage"
	"prepvio_backend/internal/workers"
	"prepvio_backend/ws"
)

// Run boots the whole application: config, database, services, router,
// background workers, and blocks until shutdown.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg.Database.DSN, cfg.Server.Env)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub()
	go hub.Run(ctx)

	container := buildServices(cfg, db, hub)
	if err := seed(cfg, container); err != nil {
		return err
	}

	go workers.NewSubscriptionWorker(container.Repos.Payments, time.Hour).Run(ctx)
	go workers.NewNotificationCleanupWorker(container.Repos.Notifications, 24*time.Hour, 30*24*time.Hour).Run(ctx)

	engine := setupRouter(cfg, db, container, hub)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildServices(cfg *config.Config, db *gorm.DB, hub *ws.Hub) *services.ServiceContainer {
	repos := services.NewRepositoryContainer(db)

	var mail email.Provider
	if cfg.Email.SMTPHost != "" {
		mail = email.NewGomailProvider(email.Config{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
	}

	gateway := payment.NewMidtransGateway(cfg.Payment.ServerKey, cfg.Payment.Production)

	files, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	var runner sandbox.Runner
	if cfg.Sandbox.Endpoint != "" {
		runner = sandbox.NewHTTPRunner(sandbox.Config{
			Endpoint: cfg.Sandbox.Endpoint,
			APIKey:   cfg.Sandbox.APIKey,
		})
	}

	return services.NewServiceContainer(repos, mail, gateway, files, hub, runner)
}

func setupRouter(cfg *config.Config, db *gorm.DB, container *services.ServiceContainer, hub *ws.Hub) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(cfg.Server.AllowedOrigins),
		middleware.DBMiddleware(db),
	)

	app := handlers.NewAppHandlers(container)
	routes.RegisterRoutes(engine, app, ws.NewHandler(hub))
	return engine
}

// seed makes sure the plan catalog exists and creates the first admin
// account when configured and missing.
func seed(cfg *config.Config, container *services.ServiceContainer) error {
	if err := container.Repos.Payments.SeedPlans(models.DefaultPlans); err != nil {
		return fmt.Errorf("failed to seed plans: %w", err)
	}

	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}
	if _, err := container.Repos.Users.FindByEmail(cfg.FirstAdminEmail); err == nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:         "Admin",
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := container.Repos.Users.Create(admin); err != nil {
		return fmt.Errorf("failed to create first admin: %w", err)
	}
	logger.Info("first admin created", "email", cfg.FirstAdminEmail)
	return nil
}
