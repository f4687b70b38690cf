package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/craftdesk/client-portal/internal/api"
	"github.com/craftdesk/client-portal/internal/core/service"
	mongodb "github.com/craftdesk/client-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/craftdesk/client-portal/internal/infrastructure/db/redis"
	"github.com/craftdesk/client-portal/internal/infrastructure/storage"
	"github.com/craftdesk/client-portal/internal/pkg/config"
	"github.com/craftdesk/client-portal/pkg/logger"
)

// @title        Client Portal API
// @version      1.0
// @description  Role-gated client portal: projects, file exchange, invoices.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	authRepo := mongodb.NewAuthRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	fileRepo := mongodb.NewFileRepository(db)
	for name, ensure := range map[string]func(context.Context) error{
		"users":    authRepo.EnsureIndexes,
		"projects": projectRepo.EnsureIndexes,
		"files":    fileRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Admin bootstrap ---
	// Registration only produces clients; the admin account exists solely
	// through this seed.
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	if _, err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Name, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	// --- Blob store + orphan sweep ---
	blobs := storage.NewDiskStore(cfg.Upload.Dir)
	sweeper := storage.NewSweeper(blobs, fileRepo, cfg.Upload.SweepInterval, cfg.Upload.SweepGrace, log)
	go sweeper.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, blobs, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
