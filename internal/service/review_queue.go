package service

import (
	"context"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"go.uber.org/zap"
)

// ReviewMessage is the payload published to the suspicious-transaction
// review queue.
type ReviewMessage struct {
	TransactionID uint64       `json:"transaction_id"`
	UTORid        string       `json:"utorid"`
	Type          model.TxType `json:"type"`
	Amount        int64        `json:"amount"`
	CreatedByID   uint64       `json:"created_by_id"`
	CreatedAt     time.Time    `json:"created_at"`
}

// ReviewQueueService feeds the outbox-style review publisher: suspicious
// rows not yet published are handed out and marked once on the wire.
type ReviewQueueService interface {
	FindTransactionsForReview(ctx context.Context, limit int) ([]ReviewMessage, error)
	MarkTransactionQueued(ctx context.Context, transactionID uint64) error
}

type reviewQueueService struct {
	transactionRepo repository.TransactionRepository
	logger          *zap.Logger
}

func NewReviewQueueService(transactionRepo repository.TransactionRepository, logger *zap.Logger) ReviewQueueService {
	return &reviewQueueService{transactionRepo: transactionRepo, logger: logger}
}

func (s *reviewQueueService) FindTransactionsForReview(ctx context.Context, limit int) ([]ReviewMessage, error) {
	txs, err := s.transactionRepo.ListUnpublishedSuspicious(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list suspicious transactions", zap.Error(err))
		return nil, ErrDatabase
	}

	messages := make([]ReviewMessage, len(txs))
	for i := range txs {
		messages[i] = ReviewMessage{
			TransactionID: txs[i].ID,
			UTORid:        txs[i].UTORid,
			Type:          txs[i].Type,
			Amount:        txs[i].Amount,
			CreatedByID:   txs[i].CreatedByID,
			CreatedAt:     txs[i].CreatedAt,
		}
	}

	return messages, nil
}

func (s *reviewQueueService) MarkTransactionQueued(ctx context.Context, transactionID uint64) error {
	if err := s.transactionRepo.MarkReviewPublished(ctx, transactionID); err != nil {
		s.logger.Error("Failed to mark transaction as queued",
			zap.Uint64("transactionID", transactionID),
			zap.Error(err))
		return ErrDatabase
	}

	return nil
}
