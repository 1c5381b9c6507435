package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"cafes/internal/config"
	"cafes/internal/database"
	"cafes/internal/forms"
	"cafes/internal/handlers"
	"cafes/internal/logging"
	"cafes/internal/repositories"
	"cafes/internal/services"
	"cafes/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logging ---
	_, flush, err := logging.New(logging.Config{Mode: cfg.LogMode, Filename: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer flush()

	// --- Store ---
	st, err := openStore(cfg)
	if err != nil {
		zap.S().Fatalf("Failed to open cafe store: %v", err)
	}
	defer func() {
		if err := st.close(); err != nil {
			zap.S().Errorf("Error closing cafe store: %v", err)
		}
	}()

	// --- Events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			zap.S().Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		zap.S().Info("RABBITMQ_URL not set, cafe events are disabled")
	}

	// --- Services and handlers ---
	cafeService := services.NewCafeService(st.repo, forms.NewValidator(), publisher)
	app := newApp(handlers.NewCafeHandler(cafeService), handlers.NewHealthHandler(st.ping))

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zap.S().Infof("Starting server on port %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			zap.S().Errorf("Server stopped: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	zap.S().Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		zap.S().Errorf("Error during Fiber shutdown: %v", err)
	}
	zap.S().Info("Server gracefully stopped")
}

// newApp builds the Fiber app with middleware and every route registered.
func newApp(cafeHandler *handlers.CafeHandler, healthHandler *handlers.HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "cafes", Immutable: true})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))

	healthHandler.RegisterRoutes(app)

	apiV1 := app.Group("/api/v1")
	cafeHandler.RegisterRoutes(apiV1)

	return app
}

// store bundles the cafe repository with its lifecycle hooks.
type store struct {
	repo  repositories.CafeRepository
	ping  func() error
	close func() error
}

// openStore connects the repository selected by cfg.DatabaseDriver.
func openStore(cfg config.Config) (*store, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		zap.S().Warn("Using the in-memory cafe store, data is lost on exit")
		return &store{
			repo:  repositories.NewMockCafeRepository(),
			close: func() error { return nil },
		}, nil
	}

	db, err := database.Open(database.Config{
		Driver:   cfg.DatabaseDriver,
		DSN:      cfg.DatabaseDSN,
		LogLevel: cfg.DatabaseLogLevel,
	})
	if err != nil {
		return nil, err
	}
	return &store{
		repo:  repositories.NewGORMCafeRepository(db),
		ping:  func() error { return database.Ping(db) },
		close: func() error { return database.Close(db) },
	}, nil
}
