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

type PromotionAdminService interface {
	Create(ctx context.Context, cmd CreatePromotionCommand) (*model.Promotion, error)
	Get(ctx context.Context, actor Actor, id uint64) (*model.Promotion, error)
	Update(ctx context.Context, cmd UpdatePromotionCommand) (*model.Promotion, error)
	Delete(ctx context.Context, actor Actor, id uint64) error
}

type promotionAdminService struct {
	promotionRepo repository.PromotionRepository
	logger        *zap.Logger
}

func NewPromotionAdminService(promotionRepo repository.PromotionRepository, logger *zap.Logger) PromotionAdminService {
	return &promotionAdminService{promotionRepo: promotionRepo, logger: logger}
}

func (s *promotionAdminService) Create(ctx context.Context, cmd CreatePromotionCommand) (*model.Promotion, error) {
	if err := requireClearance(cmd.Actor, model.RoleManager); err != nil {
		return nil, err
	}

	if !cmd.StartTime.Before(cmd.EndTime) {
		return nil, NewServiceError(constants.ErrCodeInvalidTimeWindow,
			errors.New("INVALID_TIME_WINDOW"))
	}

	p := model.Promotion{
		Name:        cmd.Name,
		Description: cmd.Description,
		Type:        cmd.Type,
		StartTime:   cmd.StartTime,
		EndTime:     cmd.EndTime,
		MinSpending: cmd.MinSpending,
		Rate:        cmd.Rate,
		Points:      cmd.Points,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.promotionRepo.Create(ctx, &p); err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("Promotion created",
		zap.Uint64("promotionID", p.ID),
		zap.String("type", string(p.Type)))

	return &p, nil
}

func (s *promotionAdminService) Get(ctx context.Context, actor Actor, id uint64) (*model.Promotion, error) {
	if actor.ID == 0 {
		return nil, NewServiceError(constants.ErrCodeUnauthorized, errors.New("UNAUTHORIZED"))
	}

	p, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, NewServiceError(constants.ErrCodePromotionNotFound, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	return p, nil
}

func (s *promotionAdminService) Update(ctx context.Context, cmd UpdatePromotionCommand) (*model.Promotion, error) {
	if err := requireClearance(cmd.Actor, model.RoleManager); err != nil {
		return nil, err
	}

	p, err := s.promotionRepo.GetByID(ctx, cmd.PromotionID)
	if err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return nil, NewServiceError(constants.ErrCodePromotionNotFound, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	// Earning terms are frozen once the window opens; purchases already
	// recorded against them must stay reproducible.
	started := !time.Now().Before(p.StartTime)
	if started && (cmd.StartTime != nil || cmd.MinSpending != nil || cmd.Rate != nil || cmd.Points != nil) {
		return nil, NewServiceError(constants.ErrCodePromotionStarted,
			errors.New("PROMOTION_STARTED"))
	}

	if cmd.Name != nil {
		p.Name = *cmd.Name
	}
	if cmd.Description != nil {
		p.Description = *cmd.Description
	}
	if cmd.StartTime != nil {
		p.StartTime = *cmd.StartTime
	}
	if cmd.EndTime != nil {
		p.EndTime = *cmd.EndTime
	}
	if cmd.MinSpending != nil {
		p.MinSpending = *cmd.MinSpending
	}
	if cmd.Rate != nil {
		p.Rate = *cmd.Rate
	}
	if cmd.Points != nil {
		p.Points = *cmd.Points
	}

	if !p.StartTime.Before(p.EndTime) {
		return nil, NewServiceError(constants.ErrCodeInvalidTimeWindow,
			errors.New("INVALID_TIME_WINDOW"))
	}

	p.UpdatedAt = time.Now()

	if err := s.promotionRepo.Update(ctx, p); err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("Promotion updated", zap.Uint64("promotionID", p.ID))
	return p, nil
}

func (s *promotionAdminService) Delete(ctx context.Context, actor Actor, id uint64) error {
	if err := requireClearance(actor, model.RoleManager); err != nil {
		return err
	}

	if err := s.promotionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return NewServiceError(constants.ErrCodePromotionNotFound, err)
		}
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("Promotion deleted", zap.Uint64("promotionID", id))
	return nil
}
