package publishers

import (
	"context"
	"encoding/json"

	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"github.com/leeyanqing2004/loyalty-platform/pkg/mq"
	"go.uber.org/zap"
)

const ReviewQueue = "loyalty.review"

// ReviewPublisher drains the suspicious-transaction outbox into the review
// queue. Rows stay unpublished until the broker accepts them, so a crashed
// publisher never loses an audit event.
type ReviewPublisher interface {
	Publish(ctx context.Context) error
}

type reviewPublisher struct {
	service   service.ReviewQueueService
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewReviewPublisher(service service.ReviewQueueService, publisher mq.Publisher, logger *zap.Logger) ReviewPublisher {
	return &reviewPublisher{service: service, publisher: publisher, logger: logger}
}

func (r *reviewPublisher) Publish(ctx context.Context) error {
	messages, err := r.service.FindTransactionsForReview(ctx, 100)
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		return nil
	}

	r.logger.Info("Publishing review events", zap.Int("count", len(messages)))

	successCount := 0
	for _, message := range messages {
		body, _ := json.Marshal(message)
		if err := r.publisher.Publish(ctx, "", ReviewQueue, body); err != nil {
			r.logger.Error("Failed to publish review event",
				zap.Error(err),
				zap.Uint64("transactionID", message.TransactionID))
			continue
		}

		if err := r.service.MarkTransactionQueued(ctx, message.TransactionID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		r.logger.Info("Successfully published review events",
			zap.Int("published", successCount),
			zap.Int("total", len(messages)))
	}

	return nil
}
