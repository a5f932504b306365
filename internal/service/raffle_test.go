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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type raffleMocks struct {
	txManager       *mocks.TxManager
	raffleRepo      *mocks.RaffleRepository
	userRepo        *mocks.UserRepository
	transactionRepo *mocks.TransactionRepository
}

func newRaffleService(t *testing.T) (service.RaffleService, *raffleMocks) {
	t.Helper()

	m := &raffleMocks{
		txManager:       &mocks.TxManager{},
		raffleRepo:      &mocks.RaffleRepository{},
		userRepo:        &mocks.UserRepository{},
		transactionRepo: &mocks.TransactionRepository{},
	}

	svc := service.NewRaffleService(m.txManager, m.raffleRepo, m.userRepo,
		m.transactionRepo, nil, zap.NewNop())

	return svc, m
}

func openRaffle() *model.Raffle {
	now := time.Now()
	return &model.Raffle{
		ID:          3,
		Name:        "winter draw",
		PointCost:   30,
		PrizePoints: 500,
		StartTime:   now.Add(-time.Hour),
		EndTime:     now.Add(time.Hour),
		DrawTime:    now.Add(2 * time.Hour),
	}
}

func dueRaffle() *model.Raffle {
	now := time.Now()
	return &model.Raffle{
		ID:          3,
		Name:        "winter draw",
		PointCost:   30,
		PrizePoints: 500,
		StartTime:   now.Add(-3 * time.Hour),
		EndTime:     now.Add(-2 * time.Hour),
		DrawTime:    now.Add(-time.Hour),
	}
}

func TestRaffle_Create(t *testing.T) {
	t.Run("persists a valid raffle", func(t *testing.T) {
		svc, m := newRaffleService(t)

		now := time.Now()
		m.raffleRepo.On("Create", context.Background(), mock.MatchedBy(func(r *model.Raffle) bool {
			return r.Name == "winter draw" && r.PointCost == 30 && r.PrizePoints == 500
		})).Return(nil)

		raffle, err := svc.Create(context.Background(), service.CreateRaffleCommand{
			Actor:       managerActor,
			Name:        "winter draw",
			PointCost:   30,
			PrizePoints: 500,
			StartTime:   now,
			EndTime:     now.Add(time.Hour),
			DrawTime:    now.Add(2 * time.Hour),
		})

		assert.NoError(t, err)
		assert.Equal(t, "winter draw", raffle.Name)
		m.raffleRepo.AssertExpectations(t)
	})

	t.Run("draw before close is rejected", func(t *testing.T) {
		svc, _ := newRaffleService(t)

		now := time.Now()
		_, err := svc.Create(context.Background(), service.CreateRaffleCommand{
			Actor:       managerActor,
			Name:        "winter draw",
			PointCost:   30,
			PrizePoints: 500,
			StartTime:   now,
			EndTime:     now.Add(2 * time.Hour),
			DrawTime:    now.Add(time.Hour),
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeInvalidTimeWindow, serviceErr.Code)
	})

	t.Run("prize must be positive", func(t *testing.T) {
		svc, _ := newRaffleService(t)

		now := time.Now()
		_, err := svc.Create(context.Background(), service.CreateRaffleCommand{
			Actor:       managerActor,
			Name:        "winter draw",
			PointCost:   30,
			PrizePoints: 0,
			StartTime:   now,
			EndTime:     now.Add(time.Hour),
			DrawTime:    now.Add(2 * time.Hour),
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeInvalidAmount, serviceErr.Code)
	})

	t.Run("cashier cannot create raffles", func(t *testing.T) {
		svc, _ := newRaffleService(t)

		_, err := svc.Create(context.Background(), service.CreateRaffleCommand{
			Actor: cashierActor,
			Name:  "winter draw",
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeForbidden, serviceErr.Code)
	})
}

func TestRaffle_Enter(t *testing.T) {
	t.Run("charges the fee as a settled redemption", func(t *testing.T) {
		svc, m := newRaffleService(t)

		raffle := openRaffle()
		user := &model.User{ID: 42, UTORid: "alicesmi", Points: 100, Verified: true}

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(raffle, nil)
		m.txManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.userRepo.On("GetForUpdate", mock.AnythingOfType("*context.valueCtx"), uint64(42)).
			Return(user, nil)
		m.raffleRepo.On("CreateEntry", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(entry *model.RaffleEntry) bool {
				return entry.RaffleID == 3 && entry.UserID == 42
			})).Return(nil)
		m.transactionRepo.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(tx *model.Transaction) bool {
				return tx.Type == model.TxTypeRedemption &&
					tx.Amount == 30 &&
					tx.Processed != nil && *tx.Processed &&
					*tx.RelatedID == uint64(3)
			})).Return(nil)
		m.userRepo.On("AddPoints", mock.AnythingOfType("*context.valueCtx"), uint64(42), int64(-30)).
			Return(nil)

		result, err := svc.Enter(context.Background(), service.EnterRaffleCommand{
			Actor:    regularActor,
			RaffleID: 3,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(70), result.PointsBalance)
		assert.True(t, *result.Transaction.Processed)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("insufficient balance rejects the entry", func(t *testing.T) {
		svc, m := newRaffleService(t)

		raffle := openRaffle()
		user := &model.User{ID: 42, UTORid: "alicesmi", Points: 10}

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(raffle, nil)
		m.txManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.userRepo.On("GetForUpdate", mock.AnythingOfType("*context.valueCtx"), uint64(42)).
			Return(user, nil)

		_, err := svc.Enter(context.Background(), service.EnterRaffleCommand{
			Actor:    regularActor,
			RaffleID: 3,
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeInsufficientPoints, serviceErr.Code)
		m.raffleRepo.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything)
	})

	t.Run("second entry by the same user is rejected", func(t *testing.T) {
		svc, m := newRaffleService(t)

		raffle := openRaffle()
		user := &model.User{ID: 42, UTORid: "alicesmi", Points: 100}

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(raffle, nil)
		m.txManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.userRepo.On("GetForUpdate", mock.AnythingOfType("*context.valueCtx"), uint64(42)).
			Return(user, nil)
		m.raffleRepo.On("CreateEntry", mock.AnythingOfType("*context.valueCtx"),
			mock.AnythingOfType("*model.RaffleEntry")).Return(repository.ErrRaffleEntryExists)

		_, err := svc.Enter(context.Background(), service.EnterRaffleCommand{
			Actor:    regularActor,
			RaffleID: 3,
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeDuplicateEntry, serviceErr.Code)
		m.userRepo.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("closed window rejects the entry", func(t *testing.T) {
		svc, m := newRaffleService(t)

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(dueRaffle(), nil)

		_, err := svc.Enter(context.Background(), service.EnterRaffleCommand{
			Actor:    regularActor,
			RaffleID: 3,
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeRaffleClosed, serviceErr.Code)
	})

	t.Run("drawn raffle rejects the entry", func(t *testing.T) {
		svc, m := newRaffleService(t)

		raffle := openRaffle()
		raffle.Drawn = true

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(raffle, nil)

		_, err := svc.Enter(context.Background(), service.EnterRaffleCommand{
			Actor:    regularActor,
			RaffleID: 3,
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeRaffleDrawn, serviceErr.Code)
	})
}

func TestRaffle_Draw(t *testing.T) {
	t.Run("settles the raffle and credits the prize", func(t *testing.T) {
		svc, m := newRaffleService(t)

		raffle := dueRaffle()
		winner := &model.User{ID: 42, UTORid: "alicesmi", Points: 70}

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(raffle, nil)
		m.raffleRepo.On("ListEntries", context.Background(), uint64(3)).
			Return([]model.RaffleEntry{{ID: 1, RaffleID: 3, UserID: 42}}, nil)
		m.userRepo.On("GetByID", context.Background(), uint64(42)).Return(winner, nil)

		m.txManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.raffleRepo.On("MarkDrawn", mock.AnythingOfType("*context.valueCtx"), uint64(3), uint64(42)).
			Return(nil)
		m.transactionRepo.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(tx *model.Transaction) bool {
				return tx.Type == model.TxTypeEvent &&
					tx.Amount == 500 &&
					tx.UTORid == "alicesmi" &&
					*tx.RelatedID == uint64(3)
			})).Return(nil)
		m.userRepo.On("AddPoints", mock.AnythingOfType("*context.valueCtx"), uint64(42), int64(500)).
			Return(nil)

		result, err := svc.Draw(context.Background(), service.DrawRaffleCommand{
			Actor:    managerActor,
			RaffleID: 3,
		})

		assert.NoError(t, err)
		assert.Equal(t, uint64(42), result.WinnerID)
		assert.Equal(t, int64(500), result.Transaction.Amount)
		m.raffleRepo.AssertExpectations(t)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("cannot draw before the draw time", func(t *testing.T) {
		svc, m := newRaffleService(t)

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(openRaffle(), nil)

		_, err := svc.Draw(context.Background(), service.DrawRaffleCommand{
			Actor:    managerActor,
			RaffleID: 3,
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeRaffleNotDue, serviceErr.Code)
	})

	t.Run("raffle without entries is not settled", func(t *testing.T) {
		svc, m := newRaffleService(t)

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(dueRaffle(), nil)
		m.raffleRepo.On("ListEntries", context.Background(), uint64(3)).
			Return([]model.RaffleEntry{}, nil)

		_, err := svc.Draw(context.Background(), service.DrawRaffleCommand{
			Actor:    managerActor,
			RaffleID: 3,
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeNoEntries, serviceErr.Code)
		m.raffleRepo.AssertNotCalled(t, "MarkDrawn", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("losing the settle race pays nothing", func(t *testing.T) {
		svc, m := newRaffleService(t)

		raffle := dueRaffle()
		winner := &model.User{ID: 42, UTORid: "alicesmi"}

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(raffle, nil)
		m.raffleRepo.On("ListEntries", context.Background(), uint64(3)).
			Return([]model.RaffleEntry{{ID: 1, RaffleID: 3, UserID: 42}}, nil)
		m.userRepo.On("GetByID", context.Background(), uint64(42)).Return(winner, nil)

		m.txManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.raffleRepo.On("MarkDrawn", mock.AnythingOfType("*context.valueCtx"), uint64(3), uint64(42)).
			Return(repository.ErrNoRowsAffected)

		_, err := svc.Draw(context.Background(), service.DrawRaffleCommand{
			Actor:    managerActor,
			RaffleID: 3,
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeRaffleDrawn, serviceErr.Code)
		m.userRepo.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already drawn raffle is terminal", func(t *testing.T) {
		svc, m := newRaffleService(t)

		raffle := dueRaffle()
		raffle.Drawn = true

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(raffle, nil)

		_, err := svc.Draw(context.Background(), service.DrawRaffleCommand{
			Actor:    managerActor,
			RaffleID: 3,
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeRaffleDrawn, serviceErr.Code)
	})
}

func TestRaffle_DrawDue(t *testing.T) {
	t.Run("skips raffles without entries and keeps sweeping", func(t *testing.T) {
		svc, m := newRaffleService(t)

		now := time.Now()
		empty := dueRaffle()
		full := dueRaffle()
		full.ID = 4
		winner := &model.User{ID: 42, UTORid: "alicesmi"}
		system := &model.User{ID: 99, UTORid: model.SystemUTORid, Role: model.RoleSuperuser}

		m.raffleRepo.On("ListDue", context.Background(), now).
			Return([]model.Raffle{*empty, *full}, nil)
		m.userRepo.On("GetByUTORid", context.Background(), model.SystemUTORid).
			Return(system, nil)

		m.raffleRepo.On("GetByID", context.Background(), uint64(3)).Return(empty, nil)
		m.raffleRepo.On("ListEntries", context.Background(), uint64(3)).
			Return([]model.RaffleEntry{}, nil)

		m.raffleRepo.On("GetByID", context.Background(), uint64(4)).Return(full, nil)
		m.raffleRepo.On("ListEntries", context.Background(), uint64(4)).
			Return([]model.RaffleEntry{{ID: 2, RaffleID: 4, UserID: 42}}, nil)
		m.userRepo.On("GetByID", context.Background(), uint64(42)).Return(winner, nil)

		m.txManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		m.raffleRepo.On("MarkDrawn", mock.AnythingOfType("*context.valueCtx"), uint64(4), uint64(42)).
			Return(nil)
		m.transactionRepo.On("Create", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(tx *model.Transaction) bool {
				return tx.CreatedByID == uint64(99)
			})).Return(nil)
		m.userRepo.On("AddPoints", mock.AnythingOfType("*context.valueCtx"), uint64(42), int64(500)).
			Return(nil)

		err := svc.DrawDue(context.Background(), now)

		assert.NoError(t, err)
		m.raffleRepo.AssertExpectations(t)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("nothing due leaves the system account unresolved", func(t *testing.T) {
		svc, m := newRaffleService(t)

		now := time.Now()
		m.raffleRepo.On("ListDue", context.Background(), now).
			Return([]model.Raffle{}, nil)

		err := svc.DrawDue(context.Background(), now)

		assert.NoError(t, err)
		m.userRepo.AssertNotCalled(t, "GetByUTORid", mock.Anything, mock.Anything)
	})
}
