package repository

import (
	"context"
	"errors"

	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
	ErrNoRowsAffected      = errors.New("NO_ROWS_AFFECTED")
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	GetByID(ctx context.Context, id uint64) (*model.Transaction, error)
	ListByUTORid(ctx context.Context, utorid string) ([]model.Transaction, error)
	List(ctx context.Context, limit, offset int) ([]model.Transaction, error)
	// AdjustAmount shifts the row's amount (and earned, for purchases) in
	// place. This is the only numeric mutation a row ever sees.
	AdjustAmount(ctx context.Context, id uint64, delta int64, bumpEarned bool) error
	// SetSuspicious transitions the flag from its opposite state exactly
	// once; a row already in the target state matches nothing and reports
	// ErrNoRowsAffected, which callers treat as an idempotent no-op.
	SetSuspicious(ctx context.Context, id uint64, suspicious bool, earned *int64) error
	// MarkProcessed flips an unprocessed redemption exactly once; a second
	// call matches no row and reports ErrNoRowsAffected.
	MarkProcessed(ctx context.Context, id uint64, processorID uint64) error
	SumPendingRedemptions(ctx context.Context, utorid string) (int64, error)
	ListUnpublishedSuspicious(ctx context.Context, limit int) ([]model.Transaction, error)
	MarkReviewPublished(ctx context.Context, id uint64) error
}

type transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transaction{db: db}
}

func (r *transaction) Create(ctx context.Context, tx *model.Transaction) error {
	return GetTx(ctx, r.db).Create(tx).Error
}

func (r *transaction) GetByID(ctx context.Context, id uint64) (*model.Transaction, error) {
	var tx model.Transaction
	err := GetTx(ctx, r.db).Preload("Promotions").Where("id = ?", id).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

func (r *transaction) ListByUTORid(ctx context.Context, utorid string) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := GetTx(ctx, r.db).Preload("Promotions").
		Where("utorid = ?", utorid).
		Order("id").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *transaction) List(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := GetTx(ctx, r.db).Preload("Promotions").
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *transaction) AdjustAmount(ctx context.Context, id uint64, delta int64, bumpEarned bool) error {
	updates := map[string]interface{}{
		"amount": gorm.Expr("amount + ?", delta),
	}
	if bumpEarned {
		updates["earned"] = gorm.Expr("earned + ?", delta)
	}

	res := GetTx(ctx, r.db).Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

func (r *transaction) SetSuspicious(ctx context.Context, id uint64, suspicious bool, earned *int64) error {
	updates := map[string]interface{}{
		"suspicious":       suspicious,
		"review_published": !suspicious,
	}
	if earned != nil {
		updates["earned"] = *earned
	}

	res := GetTx(ctx, r.db).Model(&model.Transaction{}).
		Where("id = ? AND suspicious = ?", id, !suspicious).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (r *transaction) MarkProcessed(ctx context.Context, id uint64, processorID uint64) error {
	res := GetTx(ctx, r.db).Model(&model.Transaction{}).
		Where("id = ? AND type = ? AND processed = ?", id, model.TxTypeRedemption, false).
		Updates(map[string]interface{}{
			"processed":  true,
			"related_id": processorID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (r *transaction) SumPendingRedemptions(ctx context.Context, utorid string) (int64, error) {
	var total int64
	err := GetTx(ctx, r.db).Model(&model.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("utorid = ? AND type = ? AND processed = ? AND suspicious = ?",
			utorid, model.TxTypeRedemption, false, false).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *transaction) ListUnpublishedSuspicious(ctx context.Context, limit int) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := GetTx(ctx, r.db).
		Where("suspicious = ? AND review_published = ?", true, false).
		Order("id").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *transaction) MarkReviewPublished(ctx context.Context, id uint64) error {
	return GetTx(ctx, r.db).Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("review_published", true).Error
}
