package main

import (
	"context"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/leeyanqing2004/loyalty-platform/internal/api"
	v1 "github.com/leeyanqing2004/loyalty-platform/internal/api/v1"
	"github.com/leeyanqing2004/loyalty-platform/internal/api/v1/middleware"
	"github.com/leeyanqing2004/loyalty-platform/internal/api/validator"
	"github.com/leeyanqing2004/loyalty-platform/internal/config"
	"github.com/leeyanqing2004/loyalty-platform/internal/database"
	appErrors "github.com/leeyanqing2004/loyalty-platform/internal/errors"
	"github.com/leeyanqing2004/loyalty-platform/internal/jobs"
	"github.com/leeyanqing2004/loyalty-platform/internal/metrics"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			metrics.NewMetrics,
			database.NewConnection,

			repository.NewTransactionManager,
			repository.NewUserRepository,
			repository.NewTransactionRepository,
			repository.NewPromotionRepository,
			repository.NewEventRepository,
			repository.NewRaffleRepository,

			service.NewPromotionEvaluator,
			service.NewPointsAccumulator,
			service.NewLedgerEngine,
			service.NewRaffleService,
			service.NewUserService,
			service.NewPromotionAdminService,
			service.NewEventAdminService,

			govalidator.New,
			validator.NewXValidator,
			v1.NewHandler,
			newFiberApp,
			newScheduler,
		),
		fx.Invoke(startCollectors, startScheduler, startServer),
	).Run()
}

func newFiberApp(m *metrics.Metrics, logger *zap.Logger, userRepo repository.UserRepository) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: appErrors.ErrorHandler(),
	})

	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	app.Use(middleware.Identity(userRepo, logger))

	return app
}

func newScheduler(cfg *config.Config, raffles service.RaffleService, logger *zap.Logger) *jobs.Scheduler {
	return jobs.NewScheduler(raffles, cfg.Jobs.RaffleSweepSchedule, logger)
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting API server", zap.String("port", cfg.API.Port))
			go app.Listen(cfg.API.Port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func startScheduler(scheduler *jobs.Scheduler, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start(context.Background())
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

func startCollectors(m *metrics.Metrics, logger *zap.Logger, db *gorm.DB, lc fx.Lifecycle) {
	system := metrics.NewSystemCollector(m, logger)
	dbCollector := metrics.NewDatabaseMetricsCollector(m, logger, db)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			system.Start(15 * time.Second)
			dbCollector.Start(15 * time.Second)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			system.Stop()
			dbCollector.Stop()
			return nil
		},
	})
}
