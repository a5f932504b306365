package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/constants"
	"github.com/leeyanqing2004/loyalty-platform/internal/mocks"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestPromotion_IsEligible(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

	promo := model.Promotion{
		ID:          1,
		Type:        model.PromotionTypeOneTime,
		StartTime:   start,
		EndTime:     end,
		MinSpending: dec("10.00"),
	}

	t.Run("spending exactly at the minimum qualifies", func(t *testing.T) {
		now := start.Add(time.Hour)
		assert.True(t, service.IsEligible(dec("10.00"), &promo, now))
	})

	t.Run("spending a cent below the minimum does not qualify", func(t *testing.T) {
		now := start.Add(time.Hour)
		assert.False(t, service.IsEligible(dec("9.99"), &promo, now))
	})

	t.Run("start instant is inside the window", func(t *testing.T) {
		assert.True(t, service.IsEligible(dec("10.00"), &promo, start))
	})

	t.Run("end instant is outside the window", func(t *testing.T) {
		assert.False(t, service.IsEligible(dec("10.00"), &promo, end))
	})

	t.Run("before the window does not qualify", func(t *testing.T) {
		assert.False(t, service.IsEligible(dec("100.00"), &promo, start.Add(-time.Second)))
	})
}

func TestPromotion_ComputeEarned(t *testing.T) {
	logger := zap.NewNop()
	evaluator := service.NewPromotionEvaluator(&mocks.PromotionRepository{}, logger)

	t.Run("baseline is four points per dollar floored", func(t *testing.T) {
		assert.Equal(t, int64(40), evaluator.ComputeEarned(dec("10.00"), nil))
		assert.Equal(t, int64(79), evaluator.ComputeEarned(dec("19.99"), nil))
		assert.Equal(t, int64(0), evaluator.ComputeEarned(dec("0.24"), nil))
		assert.Equal(t, int64(1), evaluator.ComputeEarned(dec("0.25"), nil))
	})

	t.Run("promotion bonus is rate and flat points on top of baseline", func(t *testing.T) {
		promos := []model.Promotion{
			{ID: 7, Rate: dec("0.02"), Points: 5},
		}

		// 40 baseline + floor(10 * 0.02 * 100) + 5 flat.
		assert.Equal(t, int64(65), evaluator.ComputeEarned(dec("10.00"), promos))
	})

	t.Run("multiple promotions are additive", func(t *testing.T) {
		promos := []model.Promotion{
			{ID: 7, Rate: dec("0.02"), Points: 5},
			{ID: 8, Points: 10},
		}

		assert.Equal(t, int64(75), evaluator.ComputeEarned(dec("10.00"), promos))
	})
}

func TestPromotion_ResolveForPurchase(t *testing.T) {
	logger := zap.NewNop()
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	window := func(p *model.Promotion) {
		p.StartTime = now.Add(-24 * time.Hour)
		p.EndTime = now.Add(24 * time.Hour)
	}

	t.Run("resolves referenced promotions and merges active automatic ones", func(t *testing.T) {
		mockPromotionRepo := &mocks.PromotionRepository{}
		evaluator := service.NewPromotionEvaluator(mockPromotionRepo, logger)

		onetime := model.Promotion{ID: 7, Type: model.PromotionTypeOneTime, Points: 5}
		window(&onetime)
		automatic := model.Promotion{ID: 9, Type: model.PromotionTypeAutomatic, Points: 2}
		window(&automatic)

		mockPromotionRepo.On("GetByIDs", context.Background(), []uint64{7}).
			Return([]model.Promotion{onetime}, nil)
		mockPromotionRepo.On("ListActiveAutomatic", context.Background(), now).
			Return([]model.Promotion{automatic}, nil)

		applied, recorded, err := evaluator.ResolveForPurchase(context.Background(), dec("10.00"), []uint64{7}, now)

		assert.NoError(t, err)
		assert.Len(t, applied, 2)
		assert.Len(t, recorded, 1)
		assert.Equal(t, uint64(7), recorded[0].ID)
	})

	t.Run("automatic promotions apply without being referenced", func(t *testing.T) {
		mockPromotionRepo := &mocks.PromotionRepository{}
		evaluator := service.NewPromotionEvaluator(mockPromotionRepo, logger)

		automatic := model.Promotion{ID: 9, Type: model.PromotionTypeAutomatic, Points: 2}
		window(&automatic)

		mockPromotionRepo.On("GetByIDs", context.Background(), []uint64(nil)).
			Return([]model.Promotion{}, nil)
		mockPromotionRepo.On("ListActiveAutomatic", context.Background(), now).
			Return([]model.Promotion{automatic}, nil)

		applied, recorded, err := evaluator.ResolveForPurchase(context.Background(), dec("10.00"), nil, now)

		assert.NoError(t, err)
		assert.Len(t, applied, 1)
		assert.Empty(t, recorded)
	})

	t.Run("any unresolvable id fails the whole purchase", func(t *testing.T) {
		mockPromotionRepo := &mocks.PromotionRepository{}
		evaluator := service.NewPromotionEvaluator(mockPromotionRepo, logger)

		mockPromotionRepo.On("GetByIDs", context.Background(), []uint64{7, 8}).
			Return(nil, repository.ErrPromotionNotFound)

		_, _, err := evaluator.ResolveForPurchase(context.Background(), dec("10.00"), []uint64{7, 8}, now)

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodePromotionNotFound, serviceErr.Code)
	})

	t.Run("ineligible referenced promotion fails the whole purchase", func(t *testing.T) {
		mockPromotionRepo := &mocks.PromotionRepository{}
		evaluator := service.NewPromotionEvaluator(mockPromotionRepo, logger)

		pricey := model.Promotion{ID: 7, Type: model.PromotionTypeOneTime, MinSpending: dec("50.00")}
		window(&pricey)

		mockPromotionRepo.On("GetByIDs", context.Background(), []uint64{7}).
			Return([]model.Promotion{pricey}, nil)

		_, _, err := evaluator.ResolveForPurchase(context.Background(), dec("10.00"), []uint64{7}, now)

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodePromotionIneligible, serviceErr.Code)
		mockPromotionRepo.AssertNotCalled(t, "ListActiveAutomatic", mock.Anything, mock.Anything)
	})
}
