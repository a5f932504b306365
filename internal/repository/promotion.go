package repository

import (
	"context"
	"errors"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"gorm.io/gorm"
)

var ErrPromotionNotFound = errors.New("PROMOTION_NOT_FOUND")

type PromotionRepository interface {
	Create(ctx context.Context, promotion *model.Promotion) error
	GetByID(ctx context.Context, id uint64) (*model.Promotion, error)
	// GetByIDs resolves every id or fails with ErrPromotionNotFound; partial
	// resolution is never returned.
	GetByIDs(ctx context.Context, ids []uint64) ([]model.Promotion, error)
	ListActiveAutomatic(ctx context.Context, now time.Time) ([]model.Promotion, error)
	Update(ctx context.Context, promotion *model.Promotion) error
	Delete(ctx context.Context, id uint64) error
}

type promotion struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotion{db: db}
}

func (r *promotion) Create(ctx context.Context, p *model.Promotion) error {
	return GetTx(ctx, r.db).Create(p).Error
}

func (r *promotion) GetByID(ctx context.Context, id uint64) (*model.Promotion, error) {
	var p model.Promotion
	err := GetTx(ctx, r.db).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *promotion) GetByIDs(ctx context.Context, ids []uint64) ([]model.Promotion, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var promos []model.Promotion
	err := GetTx(ctx, r.db).Where("id IN ?", ids).Find(&promos).Error
	if err != nil {
		return nil, err
	}

	if len(promos) != len(ids) {
		return nil, ErrPromotionNotFound
	}

	return promos, nil
}

func (r *promotion) ListActiveAutomatic(ctx context.Context, now time.Time) ([]model.Promotion, error) {
	var promos []model.Promotion
	err := GetTx(ctx, r.db).
		Where("type = ? AND start_time <= ? AND end_time > ?", model.PromotionTypeAutomatic, now, now).
		Find(&promos).Error
	if err != nil {
		return nil, err
	}

	return promos, nil
}

func (r *promotion) Update(ctx context.Context, p *model.Promotion) error {
	return GetTx(ctx, r.db).Save(p).Error
}

func (r *promotion) Delete(ctx context.Context, id uint64) error {
	res := GetTx(ctx, r.db).Delete(&model.Promotion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPromotionNotFound
	}

	return nil
}
