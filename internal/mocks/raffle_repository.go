package mocks

import (
	"context"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/stretchr/testify/mock"
)

type RaffleRepository struct {
	mock.Mock
}

func (m *RaffleRepository) Create(ctx context.Context, raffle *model.Raffle) error {
	args := m.Called(ctx, raffle)
	return args.Error(0)
}

func (m *RaffleRepository) GetByID(ctx context.Context, id uint64) (*model.Raffle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Raffle), args.Error(1)
}

func (m *RaffleRepository) CreateEntry(ctx context.Context, entry *model.RaffleEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *RaffleRepository) ListEntries(ctx context.Context, raffleID uint64) ([]model.RaffleEntry, error) {
	args := m.Called(ctx, raffleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RaffleEntry), args.Error(1)
}

func (m *RaffleRepository) MarkDrawn(ctx context.Context, raffleID, winnerID uint64) error {
	args := m.Called(ctx, raffleID, winnerID)
	return args.Error(0)
}

func (m *RaffleRepository) ListDue(ctx context.Context, now time.Time) ([]model.Raffle, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Raffle), args.Error(1)
}
