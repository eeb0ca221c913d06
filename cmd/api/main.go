package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "talent-track/docs" // Swagger docs
	"talent-track/internal/api"
	"talent-track/internal/auth"
	"talent-track/internal/bulk"
	"talent-track/internal/config"
	"talent-track/internal/llm"
	"talent-track/internal/logger"
	"talent-track/internal/notify"
	"talent-track/internal/resume"
	"talent-track/internal/storage/postgres"
	"talent-track/internal/storage/redis"
)

// @title TalentTrack API
// @version 1.0
// @description Applicant tracking backend: public application intake plus an authenticated HR dashboard with AI resume scoring, bulk operations and hiring analytics

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("config:", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer zl.Sync()

	zl.Info("connecting to database")
	var feed postgres.EventPublisher = postgres.NopPublisher{}

	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, zl)
	if err != nil {
		zl.Warn("redis unavailable, running without cache and realtime feed", zap.Error(err))
		cache = nil
	}

	var realtime *redis.Feed
	if cache != nil {
		realtime = redis.NewFeed(cache, zl)
		feed = realtime
		defer cache.Close()
	}

	store, err := postgres.New(cfg.DatabaseURL, feed, zl)
	if err != nil {
		zl.Fatal("db open", zap.Error(err))
	}
	defer store.Close()
	if err := store.EnsureSchema(context.Background()); err != nil {
		zl.Fatal("schema", zap.Error(err))
	}
	zl.Info("database connected")

	llmSvc := llm.NewService(cfg.LLMProvider, cfg.LLMAPIKey, cfg.LLMModel, zl)
	if !llmSvc.Configured() {
		zl.Warn("LLM provider not configured, resumes will not be scored")
	}

	var inviter api.Inviter
	if cfg.EmailConfigured() {
		inviter = notify.NewClient(cfg.EmailServiceID, cfg.EmailTemplateID, cfg.EmailUserID, cfg.CompanyName, zl)
	} else {
		zl.Warn("email service not configured, interview invites disabled")
	}

	queue := notify.NewQueue(zl)
	coordinator := bulk.NewCoordinator(store, store, queue, zl)
	parser := resume.NewParser(cfg.UploadsDir)

	var cacheDep api.CandidateCache
	if cache != nil {
		cacheDep = cache
	}
	apiSrv := api.NewAPI(store, cacheDep, coordinator, llmSvc, inviter, parser, zl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if realtime != nil {
		apiSrv.StartChangeWatcher(ctx, realtime)
	}

	verifier := auth.NewTokenVerifier(cfg.DashboardToken)
	router := api.NewRouter(apiSrv, verifier, cfg.UploadsDir)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second, // file uploads
		WriteTimeout: 3 * time.Minute,  // LLM scoring + response
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zl.Error("server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	zl.Info("API server listening", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zl.Fatal("server", zap.Error(err))
	}

	<-idleConnsClosed
}
