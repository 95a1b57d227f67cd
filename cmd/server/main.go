package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messaging-demo/backend/internal/models"
	"messaging-demo/backend/pkg/config"
	"messaging-demo/backend/pkg/di"
	"messaging-demo/backend/pkg/logger"
	"messaging-demo/backend/pkg/observability"
	"messaging-demo/backend/pkg/router"
	"messaging-demo/backend/pkg/secrets"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdlog.Println("No .env file found")
	}

	cfg := config.New()

	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	log.Info("Starting messaging API", "env", cfg.Server.Env)

	// Secrets: Vault when enabled, environment otherwise
	if err := secrets.Init(log); err != nil {
		log.LogError(err, "Failed to initialize secrets manager")
		os.Exit(1)
	}
	ctx := context.Background()
	cfg.JWT.Secret = secrets.GetSecretWithDefault(ctx, "jwt_secret", cfg.JWT.Secret)
	cfg.Database.Password = secrets.GetSecretWithDefault(ctx, "db_password", cfg.Database.Password)

	if cfg.Observability.TracingEnabled {
		shutdown, err := observability.SetupTracing("messaging-api")
		if err != nil {
			log.LogError(err, "Failed to initialize tracing")
		} else {
			defer shutdown()
		}
	}
	if cfg.Observability.MetricsEnabled {
		if _, err := observability.SetupPrometheusMetrics(cfg.Observability.MetricsPort); err != nil {
			log.LogError(err, "Failed to initialize metrics")
		}
	}

	db, err := config.NewDB()
	if err != nil {
		log.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
		log.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}

	// Conversation retrieval scans by pair and time; directory lists newest first
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(sender_user_id, receiver_user_id, created_at)").Error; err != nil {
		log.LogError(err, "Failed to create message index", "index", "idx_messages_conversation")
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at)").Error; err != nil {
		log.LogError(err, "Failed to create user index", "index", "idx_users_created_at")
	}

	container := di.New(db, cfg, log)

	r := router.New(container)
	r.SetupRoutes()

	if cfg.OpenAPI.SchemaPath != "" {
		if err := r.AddOpenAPIValidation(cfg.OpenAPI.SchemaPath); err != nil {
			log.LogError(err, "Failed to enable OpenAPI validation", "schema", cfg.OpenAPI.SchemaPath)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogError(err, "Server failed to start")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.LogError(err, "Server forced to shutdown")
	}

	if container.Existence != nil {
		if err := container.Existence.Close(); err != nil {
			log.LogError(err, "Failed to close cache connection")
		}
	}

	log.Info("Server exited")
}
