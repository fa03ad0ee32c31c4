package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pluain/backend/chat"
	"pluain/backend/config"
	"pluain/backend/evaluation"
	"pluain/backend/middleware"
	"pluain/backend/routes"
	"pluain/backend/storage"
	"pluain/backend/store"
	"pluain/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(start())
}

// start returns the exit code instead of exiting so deferred cleanup runs.
func start() int {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		return 1
	}

	// Initialize logger
	logger, err := utils.InitLogger(utils.LoggerConfig{Mode: cfg.LogMode})
	if err != nil {
		log.Printf("Error initializing logger: %v", err)
		return 1
	}
	defer logger.Sync()

	for _, w := range cfg.Warnings {
		logger.Warn("config fallback", "detail", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		return 1
	}
	logger.Info("bye")
	return 0
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	// Initialize storage
	kv, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}()
	logger.Info("storage ready", "driver", cfg.StorageDriver)

	progress, err := store.NewProgressStore(kv, logger)
	if err != nil {
		return err
	}
	roadmap, err := store.NewRoadmapStore(kv, logger)
	if err != nil {
		return err
	}
	sessions, err := store.NewSessionStore(kv, logger)
	if err != nil {
		return err
	}
	room := chat.NewRoom(progress, logger, chat.Config{Simulate: cfg.ChatSimulation})

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:               "pluain " + cfg.AppVersion,
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, routes.Deps{
		Cfg:      cfg,
		Logger:   logger,
		Progress: progress,
		Roadmap:  roadmap,
		Sessions: sessions,
		Room:     room,
		Rand:     evaluation.DefaultRand,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return room.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("listening", "port", cfg.ServerPort)
		return app.Listen(":" + cfg.ServerPort)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	return g.Wait()
}
