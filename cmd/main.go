package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"insurance-service/internal/config"
	"insurance-service/internal/database/postgres"
	"insurance-service/internal/database/redis"
	"insurance-service/internal/event"
	"insurance-service/internal/handlers"
	"insurance-service/internal/repository"
	"insurance-service/internal/services"
	"insurance-service/internal/worker"

	"github.com/gofiber/fiber/v3"
)

const (
	apiPrefix         = "/insurance/protected/api/v1"
	sweepInterval     = time.Hour
	poolWorkers       = 4
	poolQueueSize     = 16
	shutdownTimeout   = 10 * time.Second
	defaultSchemaPath = "schema.sql"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("/insurance", "log", "insurance_service")
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()
	slog.Info("connecting to PostgreSQL",
		"host", cfg.PostgresCfg.Host, "port", cfg.PostgresCfg.Port,
		"user", cfg.PostgresCfg.Username, "db", cfg.PostgresCfg.DBname)

	db, err := postgres.Connect(cfg.PostgresCfg)
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	defer db.Close()

	schemaPath := os.Getenv("SCHEMA_PATH")
	if schemaPath == "" {
		schemaPath = defaultSchemaPath
	}
	if err := postgres.ApplySchema(db, schemaPath); err != nil {
		slog.Warn("schema apply skipped", "path", schemaPath, "error", err)
	}

	cache, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		slog.Warn("redis unavailable, policy cache disabled", "error", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	// Notifications degrade to a no-op publisher when the broker is down;
	// lifecycle operations never depend on delivery.
	var notifier services.Notifier = services.NoopNotifier()
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Warn("rabbitmq unavailable, notifications disabled", "error", err)
	} else {
		defer rabbitConn.Close()
		notifier = event.NewNotificationPublisher(rabbitConn)
	}

	// repositories
	clientRepo := repository.NewClientRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	policyRepo := repository.NewPolicyRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)

	// services
	clientService := services.NewClientService(clientRepo)
	quoteService := services.NewQuoteService(quoteRepo, policyRepo, clientRepo, notifier, cache)
	policyService := services.NewPolicyService(policyRepo, paymentRepo, notifier, cache)
	claimService := services.NewClaimService(claimRepo, policyRepo, paymentRepo, notifier)
	paymentService := services.NewPaymentService(paymentRepo, clientRepo, notifier)
	commissionService := services.NewCommissionService(commissionRepo, policyRepo, notifier)
	reminderService := services.NewReminderService(policyRepo, notifier)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Insurance service is healthy")
	})

	mw := handlers.NewMiddleware(cfg.JWTSecret)
	api := app.Group(apiPrefix, mw.RequireAuth)

	handlers.NewClientHandler(clientService).Register(api)
	handlers.NewQuoteHandler(quoteService).Register(api)
	handlers.NewPolicyHandler(policyService).Register(api)
	handlers.NewClaimHandler(claimService).Register(api)
	handlers.NewPaymentHandler(paymentService).Register(api)
	handlers.NewCommissionHandler(commissionService).Register(api)

	// Background sweeps: quote/policy expiration, overdue lapses and
	// payment reminders run on a shared pool.
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	var managerWg sync.WaitGroup

	pool := worker.NewWorkingPool(poolWorkers, poolQueueSize)
	managerWg.Add(1)
	go pool.Start(workerCtx, &managerWg)

	scheduler := worker.NewJobScheduler("lifecycle_sweeps", sweepInterval, pool)
	scheduler.AddJob(worker.ScheduledJob{
		Name: "expire_quotes",
		Run: func(ctx context.Context) error {
			n, err := quoteService.ExpireQuotes(ctx, time.Now())
			if n > 0 {
				slog.Info("expired quotes", "count", n)
			}
			return err
		},
	})
	scheduler.AddJob(worker.ScheduledJob{
		Name: "expire_policies",
		Run: func(ctx context.Context) error {
			n, err := policyService.ExpirePolicies(ctx, time.Now())
			if n > 0 {
				slog.Info("expired policies", "count", n)
			}
			return err
		},
	})
	scheduler.AddJob(worker.ScheduledJob{
		Name: "lapse_overdue_policies",
		Run: func(ctx context.Context) error {
			n, err := policyService.LapseOverduePolicies(ctx)
			if n > 0 {
				slog.Info("lapsed policies", "count", n)
			}
			return err
		},
	})
	scheduler.AddJob(worker.ScheduledJob{
		Name: "payment_reminders",
		Run: func(ctx context.Context) error {
			n, err := reminderService.SendPaymentReminders(ctx)
			if n > 0 {
				slog.Info("payment reminders sent", "count", n)
			}
			return err
		},
	})
	managerWg.Add(1)
	go scheduler.Start(workerCtx, &managerWg)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("starting insurance service", "port", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-shutdownChan
	slog.Info("shutting down server")

	cancelWorkers()
	managerWg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
