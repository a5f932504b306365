package jobs

import (
	"context"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the raffle draw sweep on a cron schedule. Each tick draws
// every raffle whose draw time has passed.
type Scheduler struct {
	cron     *cron.Cron
	raffles  service.RaffleService
	schedule string
	logger   *zap.Logger
}

func NewScheduler(raffles service.RaffleService, schedule string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		raffles:  raffles,
		schedule: schedule,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.raffles.DrawDue(ctx, time.Now()); err != nil {
			s.logger.Error("Raffle sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Job scheduler started", zap.String("schedule", s.schedule))
	return nil
}

func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Job scheduler stopped")
}
