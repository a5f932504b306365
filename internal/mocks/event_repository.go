package mocks

import (
	"context"

	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/stretchr/testify/mock"
)

type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventRepository) ListGuests(ctx context.Context, eventID uint64) ([]model.User, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *EventRepository) IsGuest(ctx context.Context, eventID, userID uint64) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *EventRepository) IsOrganizer(ctx context.Context, eventID, userID uint64) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *EventRepository) ConsumePool(ctx context.Context, eventID uint64, amount int64) error {
	args := m.Called(ctx, eventID, amount)
	return args.Error(0)
}

func (m *EventRepository) Update(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
