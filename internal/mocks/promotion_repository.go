package mocks

import (
	"context"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/stretchr/testify/mock"
)

type PromotionRepository struct {
	mock.Mock
}

func (m *PromotionRepository) Create(ctx context.Context, promotion *model.Promotion) error {
	args := m.Called(ctx, promotion)
	return args.Error(0)
}

func (m *PromotionRepository) GetByID(ctx context.Context, id uint64) (*model.Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Promotion), args.Error(1)
}

func (m *PromotionRepository) GetByIDs(ctx context.Context, ids []uint64) ([]model.Promotion, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Promotion), args.Error(1)
}

func (m *PromotionRepository) ListActiveAutomatic(ctx context.Context, now time.Time) ([]model.Promotion, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Promotion), args.Error(1)
}

func (m *PromotionRepository) Update(ctx context.Context, promotion *model.Promotion) error {
	args := m.Called(ctx, promotion)
	return args.Error(0)
}

func (m *PromotionRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
