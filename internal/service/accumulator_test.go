package service_test

import (
	"context"
	"testing"

	"github.com/leeyanqing2004/loyalty-platform/internal/constants"
	"github.com/leeyanqing2004/loyalty-platform/internal/mocks"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func uintPtr(v uint64) *uint64 { return &v }
func boolPtr(v bool) *bool     { return &v }

func TestAccumulator_ComputeBalance(t *testing.T) {
	logger := zap.NewNop()

	user := &model.User{ID: 42, UTORid: "alicesmi"}

	t.Run("replays purchases, awards, transfers and processed redemptions", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}

		accumulator := service.NewPointsAccumulator(mockUserRepo, mockTransactionRepo, logger)

		ledger := []model.Transaction{
			{Type: model.TxTypePurchase, Amount: 80},
			{Type: model.TxTypeEvent, Amount: 50},
			{Type: model.TxTypeTransfer, Amount: 30, SenderID: uintPtr(42), RecipientID: uintPtr(7)},
			{Type: model.TxTypeTransfer, Amount: 10, SenderID: uintPtr(7), RecipientID: uintPtr(42)},
			{Type: model.TxTypeRedemption, Amount: 20, Processed: boolPtr(true)},
		}

		mockUserRepo.On("GetByUTORid", context.Background(), "alicesmi").Return(user, nil)
		mockTransactionRepo.On("ListByUTORid", context.Background(), "alicesmi").Return(ledger, nil)

		balance, err := accumulator.ComputeBalance(context.Background(), "alicesmi")

		assert.NoError(t, err)
		assert.Equal(t, int64(80+50-30+10-20), balance)
	})

	t.Run("suspicious rows contribute nothing", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}

		accumulator := service.NewPointsAccumulator(mockUserRepo, mockTransactionRepo, logger)

		ledger := []model.Transaction{
			{Type: model.TxTypePurchase, Amount: 80, Suspicious: true},
			{Type: model.TxTypePurchase, Amount: 40},
		}

		mockUserRepo.On("GetByUTORid", context.Background(), "alicesmi").Return(user, nil)
		mockTransactionRepo.On("ListByUTORid", context.Background(), "alicesmi").Return(ledger, nil)

		balance, err := accumulator.ComputeBalance(context.Background(), "alicesmi")

		assert.NoError(t, err)
		assert.Equal(t, int64(40), balance)
	})

	t.Run("unprocessed redemptions do not deduct", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}

		accumulator := service.NewPointsAccumulator(mockUserRepo, mockTransactionRepo, logger)

		ledger := []model.Transaction{
			{Type: model.TxTypePurchase, Amount: 100},
			{Type: model.TxTypeRedemption, Amount: 60, Processed: boolPtr(false)},
		}

		mockUserRepo.On("GetByUTORid", context.Background(), "alicesmi").Return(user, nil)
		mockTransactionRepo.On("ListByUTORid", context.Background(), "alicesmi").Return(ledger, nil)

		balance, err := accumulator.ComputeBalance(context.Background(), "alicesmi")

		assert.NoError(t, err)
		assert.Equal(t, int64(100), balance)
	})

	t.Run("adjustment rows are audit records only", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}

		accumulator := service.NewPointsAccumulator(mockUserRepo, mockTransactionRepo, logger)

		ledger := []model.Transaction{
			{Type: model.TxTypePurchase, Amount: 75},
			{Type: model.TxTypeAdjustment, Amount: -25, RelatedID: uintPtr(1)},
		}

		mockUserRepo.On("GetByUTORid", context.Background(), "alicesmi").Return(user, nil)
		mockTransactionRepo.On("ListByUTORid", context.Background(), "alicesmi").Return(ledger, nil)

		balance, err := accumulator.ComputeBalance(context.Background(), "alicesmi")

		assert.NoError(t, err)
		assert.Equal(t, int64(75), balance)
	})

	t.Run("unknown user fails NotFound", func(t *testing.T) {
		mockUserRepo := &mocks.UserRepository{}
		mockTransactionRepo := &mocks.TransactionRepository{}

		accumulator := service.NewPointsAccumulator(mockUserRepo, mockTransactionRepo, logger)

		mockUserRepo.On("GetByUTORid", context.Background(), "ghost123").
			Return(nil, repository.ErrUserNotFound)

		_, err := accumulator.ComputeBalance(context.Background(), "ghost123")

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeUserNotFound, serviceErr.Code)
	})
}
