package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/KBesada24/CSC430-SWE/pkg/monitoring"
	sharedredis "github.com/KBesada24/CSC430-SWE/shared/redis"
	"github.com/KBesada24/CSC430-SWE/shared/utils"
	v1 "github.com/KBesada24/CSC430-SWE/v1"
	v1handlers "github.com/KBesada24/CSC430-SWE/v1/handlers"
	v1middleware "github.com/KBesada24/CSC430-SWE/v1/middleware"
	"github.com/KBesada24/CSC430-SWE/v1/services"
)

func main() {
	// Load .env file if it exists (optional - fails silently if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)

	slog.Info("Starting ClubHub backend initialization")

	ctx := context.Background()

	// Telemetry: OTel metrics exported via Prometheus on /metrics
	shutdownTelemetry, err := monitoring.Setup(ctx, monitoring.Config{
		ServiceName: "clubhub-backend",
	})
	if err != nil {
		slog.Error("Failed to set up telemetry", "error", err)
		os.Exit(1)
	}

	// GORM database connection
	dbConfig := v1.NewDatabaseConfig()
	gormDB, err := v1.ConnectGormDB(dbConfig)
	if err != nil {
		slog.Error("Failed to connect to GORM database", "error", err)
		os.Exit(1)
	}

	// Optional Redis stream backend for notification fan-out events.
	// The service runs without it; publishes are best-effort anyway.
	var publisher services.StreamPublisher
	var redisClient *sharedredis.RedisClient
	if os.Getenv("REDIS_ADDR") != "" {
		redisClient, err = sharedredis.NewClient(sharedredis.NewConfigFromEnv())
		if err != nil {
			slog.Warn("Redis unavailable, notification stream disabled", "error", err)
		} else {
			publisher = redisClient
			slog.Info("Notification stream enabled")
		}
	}

	inviteBaseURL := utils.GetEnvOrDefault("INVITE_BASE_URL", "http://localhost:5173")

	// V1 handlers
	v1Handler := v1handlers.NewV1Handler(gormDB, inviteBaseURL, publisher)

	apiMux := http.NewServeMux()
	v1Handler.SetupV1Routes(apiMux)

	// Middleware chain: CORS -> JWT auth -> metrics -> routes
	corsMiddleware := v1middleware.NewCORSMiddleware()

	jwtConfig := v1middleware.JWTAuthConfig{
		Secret: os.Getenv("JWT_SECRET"),
		Issuer: utils.GetEnvOrDefault("JWT_ISSUER", ""),
	}
	if err := jwtConfig.Validate(); err != nil {
		slog.Error("Invalid JWT configuration", "error", err)
		os.Exit(1)
	}
	jwtAuthMiddleware := v1middleware.NewJWTAuthMiddleware(jwtConfig)

	protectedAPIHandler := corsMiddleware(
		jwtAuthMiddleware.Authenticate(
			monitoring.HTTPMetricsMiddleware(apiMux),
		),
	)

	topLevelMux := http.NewServeMux()
	topLevelMux.Handle("/api/v1/", protectedAPIHandler)
	topLevelMux.Handle("/metrics", monitoring.Handler())

	topLevelMux.Handle("/health", utils.PanicRecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		type DBHealth struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}
		type HealthStatus struct {
			Status   string   `json:"status"`
			Service  string   `json:"service"`
			Database DBHealth `json:"database"`
		}

		status := HealthStatus{
			Status:   "healthy",
			Service:  "clubhub-backend",
			Database: DBHealth{Status: "healthy"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		sqlDB, err := gormDB.DB()
		if err != nil {
			status.Database = DBHealth{Status: "unhealthy", Error: err.Error()}
			status.Status = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			status.Database = DBHealth{Status: "unhealthy", Error: err.Error()}
			status.Status = "unhealthy"
		}

		statusCode := http.StatusOK
		if status.Status != "healthy" {
			statusCode = http.StatusServiceUnavailable
		}
		utils.RespondWithJSON(w, statusCode, status)
	})))

	port := utils.GetEnvOrDefault("PORT", "3000")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      topLevelMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("ClubHub backend starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start ClubHub backend", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down ClubHub backend...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Failed to shut down telemetry", "error", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}

	slog.Info("ClubHub backend exited")
}
