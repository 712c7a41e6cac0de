package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-queue/internal/api/http"
	"github.com/spec-kit/support-queue/internal/api/http/handlers"
	"github.com/spec-kit/support-queue/internal/config"
	"github.com/spec-kit/support-queue/internal/events"
	"github.com/spec-kit/support-queue/internal/observability"
	"github.com/spec-kit/support-queue/internal/persistence"
	"github.com/spec-kit/support-queue/internal/queue"
	"github.com/spec-kit/support-queue/internal/service"
	"github.com/spec-kit/support-queue/internal/triage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	var broadcaster service.Broadcaster
	if redis != nil {
		broadcaster = redis
	}
	service.NewNotificationService(dispatcher, broadcaster, logger, cfg.Notification).RegisterHandlers()

	store := queue.NewStore(queue.Options{
		MaxBookingsPerSlot:           cfg.Queue.MaxBookingsPerSlot,
		RequireBookingBeforeQueueing: cfg.Queue.RequireBookingBeforeQueueing,
		SlotLabels:                   cfg.Queue.SlotLabels,
	}, logger)
	engine := triage.NewEngine(triage.Options{
		UrgentFlagForcesCriticalPath: cfg.Queue.UrgentFlagForcesCriticalPath,
		UrgentKeyword:                cfg.Queue.UrgentKeywordEnabled,
	}, logger)

	bookingService := service.NewBookingService(service.BookingDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	dispatchService := service.NewDispatchService(service.DispatchDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	intakeService := service.NewIntakeService(service.IntakeDependencies{
		Factory:    service.NewIssueFactory(engine),
		Store:      store,
		Booking:    bookingService,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis, metrics),
		Issues: handlers.NewIssuesHandler(intakeService, bookingService, dispatchService),
		Queues: handlers.NewQueuesHandler(dispatchService),
	})

	logger.Info("queue policy",
		zap.Int("max_bookings_per_slot", store.MaxBookingsPerSlot()),
		zap.Bool("urgent_flag_forces_critical", cfg.Queue.UrgentFlagForcesCriticalPath),
		zap.Bool("urgent_keyword", cfg.Queue.UrgentKeywordEnabled),
		zap.Bool("require_booking", cfg.Queue.RequireBookingBeforeQueueing),
		zap.Strings("slots", store.SlotLabels()))

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
