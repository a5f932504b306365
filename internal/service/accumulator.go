package service

import (
	"context"
	"errors"

	"github.com/leeyanqing2004/loyalty-platform/internal/constants"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"go.uber.org/zap"
)

// PointsAccumulator derives a user's balance by replaying their ledger. It is
// the source of truth; users.points is a cache every mutation keeps in step.
type PointsAccumulator interface {
	ComputeBalance(ctx context.Context, utorid string) (int64, error)
}

type pointsAccumulator struct {
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	logger          *zap.Logger
}

func NewPointsAccumulator(userRepo repository.UserRepository, transactionRepo repository.TransactionRepository,
	logger *zap.Logger) PointsAccumulator {
	return &pointsAccumulator{userRepo: userRepo, transactionRepo: transactionRepo, logger: logger}
}

func (a *pointsAccumulator) ComputeBalance(ctx context.Context, utorid string) (int64, error) {
	u, err := a.userRepo.GetByUTORid(ctx, utorid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return 0, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	txs, err := a.transactionRepo.ListByUTORid(ctx, utorid)
	if err != nil {
		return 0, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	var balance int64
	for i := range txs {
		balance += ledgerEffect(&txs[i], u.ID)
	}

	return balance, nil
}

// ledgerEffect is the contribution a single row makes to the subject's
// balance. Suspicious rows contribute nothing. Adjustment rows are audit
// records only; their effect is already folded into the adjusted row.
func ledgerEffect(tx *model.Transaction, userID uint64) int64 {
	if tx.Suspicious {
		return 0
	}

	switch tx.Type {
	case model.TxTypePurchase, model.TxTypeEvent:
		return tx.Amount
	case model.TxTypeTransfer:
		if tx.SenderID != nil && *tx.SenderID == userID {
			return -tx.Amount
		}
		return tx.Amount
	case model.TxTypeRedemption:
		if tx.Processed != nil && *tx.Processed {
			return -tx.Amount
		}
		return 0
	default:
		return 0
	}
}
