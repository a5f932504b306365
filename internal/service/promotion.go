package service

import (
	"context"
	"errors"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/constants"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// pointsPerDollar is the baseline accrual: 4 points per dollar spent.
var pointsPerDollar = decimal.NewFromInt(4)

// rateUnit converts a promotion rate to points per dollar (0.01 = 1 point).
var rateUnit = decimal.NewFromInt(100)

type PromotionEvaluator interface {
	// ResolveForPurchase resolves the referenced promotion ids all-or-nothing
	// and merges in the active automatic promotions the purchase qualifies
	// for. applied feeds ComputeEarned; recorded holds only the referenced
	// one-time promotions that are persisted on the transaction.
	ResolveForPurchase(ctx context.Context, spent decimal.Decimal, ids []uint64, now time.Time) (applied, recorded []model.Promotion, err error)
	ComputeEarned(spent decimal.Decimal, promotions []model.Promotion) int64
}

type promotionEvaluator struct {
	promotionRepo repository.PromotionRepository
	logger        *zap.Logger
}

func NewPromotionEvaluator(promotionRepo repository.PromotionRepository, logger *zap.Logger) PromotionEvaluator {
	return &promotionEvaluator{promotionRepo: promotionRepo, logger: logger}
}

// IsEligible reports whether a purchase of spent qualifies for the promotion
// at now. The window is half-open: the start instant qualifies, the end
// instant does not.
func IsEligible(spent decimal.Decimal, p *model.Promotion, now time.Time) bool {
	if now.Before(p.StartTime) || !now.Before(p.EndTime) {
		return false
	}
	return spent.GreaterThanOrEqual(p.MinSpending)
}

func (e *promotionEvaluator) ResolveForPurchase(ctx context.Context, spent decimal.Decimal, ids []uint64, now time.Time) ([]model.Promotion, []model.Promotion, error) {
	ids = dedupeIDs(ids)

	referenced, err := e.promotionRepo.GetByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, nil, NewServiceError(constants.ErrCodePromotionNotFound, err)
		}
		return nil, nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	for i := range referenced {
		if !IsEligible(spent, &referenced[i], now) {
			e.logger.Warn("Referenced promotion not eligible",
				zap.Uint64("promotionID", referenced[i].ID),
				zap.String("spent", spent.String()))
			return nil, nil, NewServiceError(constants.ErrCodePromotionIneligible,
				errors.New("PROMOTION_INELIGIBLE"))
		}
	}

	automatic, err := e.promotionRepo.ListActiveAutomatic(ctx, now)
	if err != nil {
		return nil, nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	applied := make([]model.Promotion, 0, len(referenced)+len(automatic))
	applied = append(applied, referenced...)

	seen := make(map[uint64]bool, len(referenced))
	for _, p := range referenced {
		seen[p.ID] = true
	}
	for i := range automatic {
		if seen[automatic[i].ID] || !IsEligible(spent, &automatic[i], now) {
			continue
		}
		applied = append(applied, automatic[i])
	}

	recorded := make([]model.Promotion, 0, len(referenced))
	for _, p := range referenced {
		if p.Type == model.PromotionTypeOneTime {
			recorded = append(recorded, p)
		}
	}

	return applied, recorded, nil
}

// ComputeEarned is the additive accrual: floor(spent * 4) baseline, plus
// floor(spent * rate * 100) + points per applied promotion.
func (e *promotionEvaluator) ComputeEarned(spent decimal.Decimal, promotions []model.Promotion) int64 {
	earned := spent.Mul(pointsPerDollar).Floor().IntPart()

	for _, p := range promotions {
		earned += spent.Mul(p.Rate).Mul(rateUnit).Floor().IntPart()
		earned += p.Points
	}

	return earned
}

func dedupeIDs(ids []uint64) []uint64 {
	if len(ids) < 2 {
		return ids
	}

	seen := make(map[uint64]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
