package mocks

import (
	"context"

	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) GetByID(ctx context.Context, id uint64) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *TransactionRepository) ListByUTORid(ctx context.Context, utorid string) ([]model.Transaction, error) {
	args := m.Called(ctx, utorid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionRepository) List(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionRepository) AdjustAmount(ctx context.Context, id uint64, delta int64, bumpEarned bool) error {
	args := m.Called(ctx, id, delta, bumpEarned)
	return args.Error(0)
}

func (m *TransactionRepository) SetSuspicious(ctx context.Context, id uint64, suspicious bool, earned *int64) error {
	args := m.Called(ctx, id, suspicious, earned)
	return args.Error(0)
}

func (m *TransactionRepository) MarkProcessed(ctx context.Context, id uint64, processorID uint64) error {
	args := m.Called(ctx, id, processorID)
	return args.Error(0)
}

func (m *TransactionRepository) SumPendingRedemptions(ctx context.Context, utorid string) (int64, error) {
	args := m.Called(ctx, utorid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TransactionRepository) ListUnpublishedSuspicious(ctx context.Context, limit int) ([]model.Transaction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionRepository) MarkReviewPublished(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
