package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/matiisnothere-15/septjunto/docs"
	"github.com/matiisnothere-15/septjunto/internal/config"
	"github.com/matiisnothere-15/septjunto/internal/handlers"
	"github.com/matiisnothere-15/septjunto/internal/metrics"
	"github.com/matiisnothere-15/septjunto/internal/models"
	"github.com/matiisnothere-15/septjunto/internal/repository"
	"github.com/matiisnothere-15/septjunto/internal/services"
	"github.com/matiisnothere-15/septjunto/internal/services/cache"
	"github.com/matiisnothere-15/septjunto/internal/services/caches"
	"github.com/matiisnothere-15/septjunto/internal/storage"
)

// @title Septjunto Estimation API
// @version 1.0
// @description Effort estimation for software projects.
// @BasePath /api
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("config error: " + err.Error())
	}
	log, err := config.InitLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db := ConnectDatabase(cfg, log)
	MigrateDatabase(db, log)

	catalogCache := services.NewCatalogCache(InitCacheLayer(cfg, log), log)
	reportStore := InitReportStore(cfg, log)

	projectRepo := repository.NewProjectRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	complexityRepo := repository.NewComplexityRepository(db)
	relationRepo := repository.NewRelationRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)

	projectService := services.NewProjectService(projectRepo, componentRepo, evaluationRepo, catalogCache, log)
	componentService := services.NewComponentService(componentRepo, projectRepo, catalogCache, log)
	complexityService := services.NewComplexityService(complexityRepo, catalogCache, log)
	relationService := services.NewRelationService(relationRepo, componentRepo, complexityRepo, log)
	evaluationService := services.NewEvaluationService(evaluationRepo, projectRepo, componentRepo, complexityRepo, relationRepo, log)
	catalogService := services.NewCatalogService(db, catalogCache, log)
	reportService := services.NewReportService(evaluationRepo, reportStore, log)

	if cfg.SeedCatalog {
		result, err := catalogService.Seed(context.Background())
		if err != nil {
			log.Fatal("Catalog seed failed", zap.Error(err))
		}
		log.Info("Catalog seeded",
			zap.Int("components_created", result.ComponentsCreated),
			zap.Int("complexities_created", result.ComplexitiesCreated),
			zap.Int("relations", result.RelationsUpserted),
		)
	}

	app := fiber.New(fiber.Config{
		AppName:   "septjunto",
		BodyLimit: 32 << 20,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	h := &handlers.Handlers{
		Projects:     handlers.NewProjectHandler(projectService, log),
		Components:   handlers.NewComponentHandler(componentService, log),
		Complexities: handlers.NewComplexityHandler(complexityService, log),
		Relations:    handlers.NewRelationHandler(relationService, log),
		Evaluations:  handlers.NewEvaluationHandler(evaluationService, reportService, log),
		Catalog:      handlers.NewCatalogHandler(catalogService, log),
		Cache:        handlers.NewCacheHandler(catalogCache, log),
	}
	h.Register(app.Group("/api"))

	for _, r := range app.GetRoutes(true) {
		log.Debug("Registered route", zap.String("method", r.Method), zap.String("path", r.Path))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Server listening", zap.String("port", cfg.AppPort))
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}

func ConnectDatabase(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	return db
}

func MigrateDatabase(db *gorm.DB, log *zap.Logger) {
	if err := models.Migrate(db); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}
}

// InitCacheLayer picks Redis when configured and the in-memory layer otherwise.
func InitCacheLayer(cfg *config.Config, log *zap.Logger) cache.CacheLayer {
	if !cfg.RedisEnabled() {
		log.Info("Catalog cache: memory", zap.Duration("ttl", cfg.CacheTTL))
		return caches.NewMemoryCache(cfg.CacheMaxBytes, cfg.CacheTTL, log)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := storage.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort)
	if err != nil {
		log.Warn("Redis unavailable, using the in-memory catalog cache", zap.Error(err))
		return caches.NewMemoryCache(cfg.CacheMaxBytes, cfg.CacheTTL, log)
	}
	log.Info("Catalog cache: redis", zap.String("host", cfg.RedisHost), zap.Duration("ttl", cfg.CacheTTL))
	return caches.NewRedisCache(client, cfg.CacheTTL, log)
}

// InitReportStore returns nil when MinIO is not configured.
func InitReportStore(cfg *config.Config, log *zap.Logger) services.ReportStore {
	if !cfg.MinioEnabled() {
		log.Info("Report archive disabled")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := storage.NewMinioClient(ctx, cfg, log)
	if err != nil {
		log.Fatal("MinIO client initialization failed", zap.Error(err))
	}
	log.Info("Report archive enabled", zap.String("bucket", cfg.MinioBucket))
	return storage.NewMinioReportStore(client, cfg.MinioBucket)
}
