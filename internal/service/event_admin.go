package service

import (
	"context"
	"errors"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/constants"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"go.uber.org/zap"
)

type CreateEventCommand struct {
	Actor       Actor
	Name        string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Capacity    *int
	Points      int64
}

type EventAdminService interface {
	Create(ctx context.Context, cmd CreateEventCommand) (*model.Event, error)
	Get(ctx context.Context, actor Actor, id uint64) (*model.Event, error)
	Update(ctx context.Context, cmd UpdateEventCommand) (*model.Event, error)
}

type eventAdminService struct {
	eventRepo repository.EventRepository
	logger    *zap.Logger
}

func NewEventAdminService(eventRepo repository.EventRepository, logger *zap.Logger) EventAdminService {
	return &eventAdminService{eventRepo: eventRepo, logger: logger}
}

func (s *eventAdminService) Create(ctx context.Context, cmd CreateEventCommand) (*model.Event, error) {
	if err := requireClearance(cmd.Actor, model.RoleManager); err != nil {
		return nil, err
	}

	if !cmd.StartTime.Before(cmd.EndTime) {
		return nil, NewServiceError(constants.ErrCodeInvalidTimeWindow,
			errors.New("INVALID_TIME_WINDOW"))
	}
	if cmd.Points < 0 {
		return nil, NewServiceError(constants.ErrCodeInvalidAmount, errors.New("INVALID_AMOUNT"))
	}

	e := model.Event{
		Name:         cmd.Name,
		Description:  cmd.Description,
		Location:     cmd.Location,
		StartTime:    cmd.StartTime,
		EndTime:      cmd.EndTime,
		Capacity:     cmd.Capacity,
		PointsRemain: cmd.Points,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.eventRepo.Create(ctx, &e); err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("Event created",
		zap.Uint64("eventID", e.ID),
		zap.Int64("pointsPool", e.PointsRemain))

	return &e, nil
}

func (s *eventAdminService) Update(ctx context.Context, cmd UpdateEventCommand) (*model.Event, error) {
	if err := requireClearance(cmd.Actor, model.RoleManager); err != nil {
		return nil, err
	}

	e, err := s.eventRepo.GetByID(ctx, cmd.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, NewServiceError(constants.ErrCodeEventNotFound, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if cmd.Name != nil {
		e.Name = *cmd.Name
	}
	if cmd.Description != nil {
		e.Description = *cmd.Description
	}
	if cmd.Location != nil {
		e.Location = *cmd.Location
	}
	if cmd.StartTime != nil {
		e.StartTime = *cmd.StartTime
	}
	if cmd.EndTime != nil {
		e.EndTime = *cmd.EndTime
	}
	if cmd.Capacity != nil {
		e.Capacity = cmd.Capacity
	}
	if cmd.Published != nil {
		e.Published = *cmd.Published
	}
	if cmd.Points != nil {
		// The new total must still cover what has already been awarded.
		remain := *cmd.Points - e.PointsAwarded
		if remain < 0 {
			return nil, NewServiceError(constants.ErrCodeInvalidAmount,
				errors.New("INVALID_AMOUNT"))
		}
		e.PointsRemain = remain
	}

	if !e.StartTime.Before(e.EndTime) {
		return nil, NewServiceError(constants.ErrCodeInvalidTimeWindow,
			errors.New("INVALID_TIME_WINDOW"))
	}

	e.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, e); err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("Event updated",
		zap.Uint64("eventID", e.ID),
		zap.Int64("pointsRemain", e.PointsRemain))

	return e, nil
}

func (s *eventAdminService) Get(ctx context.Context, actor Actor, id uint64) (*model.Event, error) {
	if actor.ID == 0 {
		return nil, NewServiceError(constants.ErrCodeUnauthorized, errors.New("UNAUTHORIZED"))
	}

	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, NewServiceError(constants.ErrCodeEventNotFound, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	return e, nil
}
