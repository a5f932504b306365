package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/config"
	"github.com/leeyanqing2004/loyalty-platform/internal/publishers"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"github.com/leeyanqing2004/loyalty-platform/pkg/mq"
	"github.com/leeyanqing2004/loyalty-platform/pkg/mysql"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			NewConnectionDB,
			NewMQConnection,
			NewMQPublisher,

			repository.NewTransactionRepository,

			service.NewReviewQueueService,

			publishers.NewReviewPublisher,
		),
		fx.Invoke(runReviewPublisher, runReviewConsumer),
	).Run()
}

func runReviewPublisher(cfg *config.Config, publisher publishers.ReviewPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{publishers.ReviewQueue}); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", publishers.ReviewQueue))

			go func() {
				ticker := time.NewTicker(time.Duration(cfg.Jobs.ReviewPollSeconds) * time.Second)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish review events", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("review publisher started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping review publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func runReviewConsumer(rabbit *mq.RabbitMQ, logger *zap.Logger, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			consumer, err := rabbit.CreateConsumer()
			if err != nil {
				return err
			}

			go func() {
				err := consumer.Consume(appCtx, 10, publishers.ReviewQueue, handleReviewEvent(logger))
				if err != nil && appCtx.Err() == nil {
					logger.Error("review consumer stopped", zap.Error(err))
				}
			}()

			logger.Info("review consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}

func handleReviewEvent(logger *zap.Logger) mq.Handle {
	return func(ctx context.Context, body []byte) error {
		var message service.ReviewMessage
		if err := json.Unmarshal(body, &message); err != nil {
			logger.Error("discarding malformed review event", zap.Error(err))
			return nil
		}

		logger.Info("Suspicious transaction flagged for review",
			zap.Uint64("transactionID", message.TransactionID),
			zap.String("utorid", message.UTORid),
			zap.String("type", string(message.Type)),
			zap.Int64("amount", message.Amount),
		)

		return nil
	}
}

func NewConnectionDB(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()
	return mysql.NewConnection(ctx, cfg.Database, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
