package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PY-Dev20/traint-5x5/internal/cache"
	"github.com/PY-Dev20/traint-5x5/internal/config"
	"github.com/PY-Dev20/traint-5x5/internal/database"
	"github.com/PY-Dev20/traint-5x5/internal/logger"
	"github.com/PY-Dev20/traint-5x5/internal/media"
	"github.com/PY-Dev20/traint-5x5/internal/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Error("DB_URL is required")
		os.Exit(1)
	}
	if err := database.ConnectDB(ctx, cfg.DBUrl, database.PoolOptions{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB()

	// 3. Optional collaborators
	var views *cache.ViewCache
	if cfg.CacheEnabled() {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("catalog cache disabled", "error", err)
		} else {
			defer client.Close()
			views = cache.NewViewCache(client, cfg.CatalogCacheTTL, log)
			log.Info("catalog cache enabled", "ttl", cfg.CatalogCacheTTL)
		}
	}

	resolver, err := media.NewResolver(media.Config{
		Backend:             cfg.MediaBackend,
		SupabaseURL:         cfg.SupabaseURL,
		SupabaseBucket:      cfg.SupabaseBucket,
		CloudinaryCloudName: cfg.CloudinaryName,
		CloudinaryAPIKey:    cfg.CloudinaryAPIKey,
		CloudinaryAPISecret: cfg.CloudinaryAPISecret,
	})
	if err != nil {
		log.Error("failed to configure media backend", "error", err)
		os.Exit(1)
	}

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      "traint",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	// Middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowCredentials: cfg.CORSAllowOrigins != "*",
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(recover.New())
	if cfg.EnableCompression {
		app.Use(compress.New())
	}

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, database.DB, routes.Dependencies{
		Cache:  views,
		Media:  resolver,
		Logger: log,
	}); err != nil {
		log.Error("failed to register routes", "error", err)
		os.Exit(1)
	}

	// 5. Start Server
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server failed to start", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
