package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/mocks"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestReviewQueue_FindTransactionsForReview(t *testing.T) {
	t.Run("maps unpublished suspicious rows to messages", func(t *testing.T) {
		transactionRepo := &mocks.TransactionRepository{}
		svc := service.NewReviewQueueService(transactionRepo, zap.NewNop())

		created := time.Now()
		transactionRepo.On("ListUnpublishedSuspicious", context.Background(), 100).
			Return([]model.Transaction{
				{ID: 10, UTORid: "alicesmi", Type: model.TxTypePurchase, Amount: 40,
					CreatedByID: 2, CreatedAt: created},
			}, nil)

		messages, err := svc.FindTransactionsForReview(context.Background(), 100)

		assert.NoError(t, err)
		assert.Len(t, messages, 1)
		assert.Equal(t, uint64(10), messages[0].TransactionID)
		assert.Equal(t, "alicesmi", messages[0].UTORid)
		assert.Equal(t, model.TxTypePurchase, messages[0].Type)
	})

	t.Run("repository failures surface as database errors", func(t *testing.T) {
		transactionRepo := &mocks.TransactionRepository{}
		svc := service.NewReviewQueueService(transactionRepo, zap.NewNop())

		transactionRepo.On("ListUnpublishedSuspicious", context.Background(), 100).
			Return(nil, errors.New("connection reset"))

		_, err := svc.FindTransactionsForReview(context.Background(), 100)

		assert.ErrorIs(t, err, service.ErrDatabase)
	})
}

func TestReviewQueue_MarkTransactionQueued(t *testing.T) {
	transactionRepo := &mocks.TransactionRepository{}
	svc := service.NewReviewQueueService(transactionRepo, zap.NewNop())

	transactionRepo.On("MarkReviewPublished", context.Background(), uint64(10)).Return(nil)

	err := svc.MarkTransactionQueued(context.Background(), 10)

	assert.NoError(t, err)
	transactionRepo.AssertExpectations(t)
}
