package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/craftdesk/client-portal/internal/api/handler"
	"github.com/craftdesk/client-portal/internal/api/middleware"
	"github.com/craftdesk/client-portal/internal/core/domain"
	"github.com/craftdesk/client-portal/internal/core/service"
	mongodb "github.com/craftdesk/client-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/craftdesk/client-portal/internal/infrastructure/db/redis"
	"github.com/craftdesk/client-portal/internal/infrastructure/storage"
	"github.com/craftdesk/client-portal/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, blobs *storage.DiskStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.BodyLimit(cfg.Upload.BodyLimit))
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	fileRepo := mongodb.NewFileRepository(db)
	cache := redisdb.NewProjectCache(rdb)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)
	projectService := service.NewProjectService(projectRepo, fileRepo, authRepo, cache, log)
	fileService := service.NewFileService(fileRepo, projectRepo, blobs, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	adminHandler := handler.NewAdminHandler(projectService)
	fileHandler := handler.NewFileHandler(fileService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Client routes ---
	e.GET("/projects", projectHandler.List, authRequired)
	e.POST("/projects", projectHandler.Create, authRequired)
	e.POST("/upload", fileHandler.Upload, authRequired)
	e.GET("/files/:id", fileHandler.Download, authRequired)

	// --- Admin routes ---
	admin := e.Group("/admin", authRequired, adminOnly)
	admin.GET("/projects", adminHandler.ListProjects)
	admin.PUT("/projects/:id", adminHandler.UpdateStatus)
	admin.PUT("/projects/:id/invoice", adminHandler.UpsertInvoice)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
