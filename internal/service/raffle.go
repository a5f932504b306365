package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/constants"
	"github.com/leeyanqing2004/loyalty-platform/internal/metrics"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"go.uber.org/zap"
)

// RaffleService settles raffle entries and draws on top of the ledger
// primitives: the entry fee is a processed redemption row, the prize an
// event-type award row.
type RaffleService interface {
	Create(ctx context.Context, cmd CreateRaffleCommand) (*model.Raffle, error)
	Get(ctx context.Context, actor Actor, id uint64) (*model.Raffle, error)
	Enter(ctx context.Context, cmd EnterRaffleCommand) (EnterRaffleResult, error)
	Draw(ctx context.Context, cmd DrawRaffleCommand) (DrawRaffleResult, error)
	// DrawDue settles every raffle whose draw time has passed. Raffles
	// without entries are skipped and retried on the next sweep.
	DrawDue(ctx context.Context, now time.Time) error
}

type raffleService struct {
	txManager       repository.TxManager
	raffleRepo      repository.RaffleRepository
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

func NewRaffleService(txManager repository.TxManager, raffleRepo repository.RaffleRepository,
	userRepo repository.UserRepository, transactionRepo repository.TransactionRepository,
	metrics *metrics.Metrics, logger *zap.Logger) RaffleService {
	return &raffleService{
		txManager:       txManager,
		raffleRepo:      raffleRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

func (s *raffleService) Create(ctx context.Context, cmd CreateRaffleCommand) (*model.Raffle, error) {
	if err := requireClearance(cmd.Actor, model.RoleManager); err != nil {
		return nil, err
	}

	if cmd.PointCost < 0 || cmd.PrizePoints <= 0 {
		return nil, NewServiceError(constants.ErrCodeInvalidAmount, errors.New("INVALID_AMOUNT"))
	}
	if !cmd.StartTime.Before(cmd.EndTime) || cmd.DrawTime.Before(cmd.EndTime) {
		return nil, NewServiceError(constants.ErrCodeInvalidTimeWindow,
			errors.New("INVALID_TIME_WINDOW"))
	}

	raffle := &model.Raffle{
		Name:        cmd.Name,
		PointCost:   cmd.PointCost,
		PrizePoints: cmd.PrizePoints,
		StartTime:   cmd.StartTime,
		EndTime:     cmd.EndTime,
		DrawTime:    cmd.DrawTime,
	}

	if err := s.raffleRepo.Create(ctx, raffle); err != nil {
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("Raffle created",
		zap.Uint64("raffleID", raffle.ID),
		zap.Int64("pointCost", raffle.PointCost),
		zap.Int64("prizePoints", raffle.PrizePoints))

	return raffle, nil
}

func (s *raffleService) Get(ctx context.Context, actor Actor, id uint64) (*model.Raffle, error) {
	if err := requireClearance(actor, model.RoleRegular); err != nil {
		return nil, err
	}

	raffle, err := s.raffleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return nil, NewServiceError(constants.ErrCodeRaffleNotFound, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	return raffle, nil
}

func (s *raffleService) Enter(ctx context.Context, cmd EnterRaffleCommand) (EnterRaffleResult, error) {
	if err := requireClearance(cmd.Actor, model.RoleRegular); err != nil {
		return EnterRaffleResult{}, err
	}

	raffle, err := s.raffleRepo.GetByID(ctx, cmd.RaffleID)
	if err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return EnterRaffleResult{}, NewServiceError(constants.ErrCodeRaffleNotFound, err)
		}
		return EnterRaffleResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	now := time.Now()
	if raffle.Drawn {
		return EnterRaffleResult{}, NewServiceError(constants.ErrCodeRaffleDrawn,
			errors.New("RAFFLE_DRAWN"))
	}
	if now.Before(raffle.StartTime) || !now.Before(raffle.EndTime) {
		return EnterRaffleResult{}, NewServiceError(constants.ErrCodeRaffleClosed,
			errors.New("RAFFLE_CLOSED"))
	}

	var (
		entry model.RaffleEntry
		fee   model.Transaction
		after int64
	)

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetForUpdate(ctx, cmd.Actor.ID)
		if err != nil {
			return NewServiceError(constants.ErrCodeUnauthorized, err)
		}

		if user.Points < raffle.PointCost {
			return NewServiceError(constants.ErrCodeInsufficientPoints,
				errors.New("INSUFFICIENT_POINTS"))
		}

		entry = model.RaffleEntry{RaffleID: raffle.ID, UserID: user.ID, CreatedAt: now}
		if err := s.raffleRepo.CreateEntry(ctx, &entry); err != nil {
			if errors.Is(err, repository.ErrRaffleEntryExists) {
				return NewServiceError(constants.ErrCodeDuplicateEntry, err)
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		// The fee is a settled redemption so the replayed balance matches
		// the cached one immediately.
		processed := true
		raffleID := raffle.ID
		fee = model.Transaction{
			UTORid:      user.UTORid,
			Type:        model.TxTypeRedemption,
			Amount:      raffle.PointCost,
			Processed:   &processed,
			RelatedID:   &raffleID,
			CreatedByID: user.ID,
			Remark:      "raffle entry: " + raffle.Name,
			CreatedAt:   now,
		}
		if err := s.transactionRepo.Create(ctx, &fee); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if err := s.userRepo.AddPoints(ctx, user.ID, -raffle.PointCost); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		after = user.Points - raffle.PointCost
		return nil
	})
	if err != nil {
		return EnterRaffleResult{}, err
	}

	s.metrics.RecordTransactionCreated(string(model.TxTypeRedemption))
	s.metrics.RecordRaffleEntry()
	s.logger.Info("Raffle entry recorded",
		zap.Uint64("raffleID", raffle.ID),
		zap.Uint64("entryID", entry.ID),
		zap.Int64("pointCost", raffle.PointCost))

	return EnterRaffleResult{
		EntryID:       entry.ID,
		RaffleID:      raffle.ID,
		Transaction:   newTransactionResult(&fee),
		PointsBalance: after,
	}, nil
}

func (s *raffleService) Draw(ctx context.Context, cmd DrawRaffleCommand) (DrawRaffleResult, error) {
	if err := requireClearance(cmd.Actor, model.RoleManager); err != nil {
		return DrawRaffleResult{}, err
	}

	raffle, err := s.raffleRepo.GetByID(ctx, cmd.RaffleID)
	if err != nil {
		if errors.Is(err, repository.ErrRaffleNotFound) {
			return DrawRaffleResult{}, NewServiceError(constants.ErrCodeRaffleNotFound, err)
		}
		return DrawRaffleResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if raffle.Drawn {
		return DrawRaffleResult{}, NewServiceError(constants.ErrCodeRaffleDrawn,
			errors.New("RAFFLE_DRAWN"))
	}
	if time.Now().Before(raffle.DrawTime) {
		return DrawRaffleResult{}, NewServiceError(constants.ErrCodeRaffleNotDue,
			errors.New("RAFFLE_NOT_DUE"))
	}

	entries, err := s.raffleRepo.ListEntries(ctx, raffle.ID)
	if err != nil {
		return DrawRaffleResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	if len(entries) == 0 {
		return DrawRaffleResult{}, NewServiceError(constants.ErrCodeNoEntries,
			errors.New("NO_ENTRIES"))
	}

	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(entries))))
	if err != nil {
		return DrawRaffleResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	winnerID := entries[idx.Int64()].UserID

	winner, err := s.userRepo.GetByID(ctx, winnerID)
	if err != nil {
		return DrawRaffleResult{}, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	raffleID := raffle.ID
	recipientID := winner.ID
	prize := model.Transaction{
		UTORid:      winner.UTORid,
		Type:        model.TxTypeEvent,
		Amount:      raffle.PrizePoints,
		RelatedID:   &raffleID,
		RecipientID: &recipientID,
		CreatedByID: cmd.Actor.ID,
		Remark:      "raffle prize: " + raffle.Name,
		CreatedAt:   time.Now(),
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.raffleRepo.MarkDrawn(ctx, raffle.ID, winner.ID); err != nil {
			// drawn is terminal; a racing draw already settled it.
			if errors.Is(err, repository.ErrNoRowsAffected) {
				return NewServiceError(constants.ErrCodeRaffleDrawn, err)
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		if err := s.transactionRepo.Create(ctx, &prize); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		return s.userRepo.AddPoints(ctx, winner.ID, raffle.PrizePoints)
	})
	if err != nil {
		return DrawRaffleResult{}, err
	}

	s.metrics.RecordTransactionCreated(string(model.TxTypeEvent))
	s.metrics.RecordRaffleDraw()
	s.logger.Info("Raffle drawn",
		zap.Uint64("raffleID", raffle.ID),
		zap.Uint64("winnerID", winner.ID),
		zap.Int64("prizePoints", raffle.PrizePoints))

	return DrawRaffleResult{
		RaffleID:    raffle.ID,
		WinnerID:    winner.ID,
		Transaction: newTransactionResult(&prize),
	}, nil
}

func (s *raffleService) DrawDue(ctx context.Context, now time.Time) error {
	due, err := s.raffleRepo.ListDue(ctx, now)
	if err != nil {
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if len(due) == 0 {
		return nil
	}

	// Sweep draws run as the seeded system account, never as a real user.
	owner, err := s.userRepo.GetByUTORid(ctx, model.SystemUTORid)
	if err != nil {
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}
	system := Actor{ID: owner.ID, UTORid: owner.UTORid, Role: owner.Role}

	for i := range due {
		_, err := s.Draw(ctx, DrawRaffleCommand{Actor: system, RaffleID: due[i].ID})
		if err != nil {
			var svcErr Error
			if errors.As(err, &svcErr) && svcErr.Code == constants.ErrCodeNoEntries {
				continue
			}
			s.logger.Error("Failed to draw due raffle",
				zap.Uint64("raffleID", due[i].ID),
				zap.Error(err))
		}
	}

	return nil
}
