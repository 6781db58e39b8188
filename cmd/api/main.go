package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-website-backend/config"
	v1 "go-website-backend/internal/delivery/http/v1"
	"go-website-backend/internal/usecase"
	"go-website-backend/pkg/email"
	"go-website-backend/pkg/logger"
	"go-website-backend/pkg/ratelimit"
	"go-website-backend/pkg/redis"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting website backend", "port", cfg.Port)

	// 3. Setup Redis (optional; limiter falls back to in-memory)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting will run in-memory", "error", err)
		}
	}
	defer redis.Close()

	// 4. Setup Email Service
	emailService := email.NewService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact emails will only be logged")
	}

	// 5. Setup Contact Submission Pipeline
	contactLimiter := ratelimit.New(
		redis.Client(),
		cfg.ContactRateLimit,
		time.Duration(cfg.ContactRateWindowSeconds)*time.Second,
		"rl:contact:",
	)
	contactUC := usecase.NewContactUsecase(emailService, contactLimiter)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
