package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"gorm.io/gorm"
)

var (
	ErrRaffleNotFound    = errors.New("RAFFLE_NOT_FOUND")
	ErrRaffleEntryExists = errors.New("RAFFLE_ENTRY_EXISTED")
)

type RaffleRepository interface {
	Create(ctx context.Context, raffle *model.Raffle) error
	GetByID(ctx context.Context, id uint64) (*model.Raffle, error)
	CreateEntry(ctx context.Context, entry *model.RaffleEntry) error
	ListEntries(ctx context.Context, raffleID uint64) ([]model.RaffleEntry, error)
	// MarkDrawn sets the terminal state exactly once; a raffle already drawn
	// matches no row and reports ErrNoRowsAffected.
	MarkDrawn(ctx context.Context, raffleID, winnerID uint64) error
	ListDue(ctx context.Context, now time.Time) ([]model.Raffle, error)
}

type raffle struct {
	db *gorm.DB
}

func NewRaffleRepository(db *gorm.DB) RaffleRepository {
	return &raffle{db: db}
}

func (r *raffle) Create(ctx context.Context, rf *model.Raffle) error {
	return GetTx(ctx, r.db).Create(rf).Error
}

func (r *raffle) GetByID(ctx context.Context, id uint64) (*model.Raffle, error) {
	var rf model.Raffle
	err := GetTx(ctx, r.db).Where("id = ?", id).First(&rf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRaffleNotFound
	}
	if err != nil {
		return nil, err
	}

	return &rf, nil
}

func (r *raffle) CreateEntry(ctx context.Context, entry *model.RaffleEntry) error {
	err := GetTx(ctx, r.db).Create(entry).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrRaffleEntryExists
	}

	return err
}

func (r *raffle) ListEntries(ctx context.Context, raffleID uint64) ([]model.RaffleEntry, error) {
	var entries []model.RaffleEntry
	err := GetTx(ctx, r.db).
		Where("raffle_id = ?", raffleID).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *raffle) MarkDrawn(ctx context.Context, raffleID, winnerID uint64) error {
	res := GetTx(ctx, r.db).Model(&model.Raffle{}).
		Where("id = ? AND drawn = ?", raffleID, false).
		Updates(map[string]interface{}{
			"drawn":     true,
			"winner_id": winnerID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (r *raffle) ListDue(ctx context.Context, now time.Time) ([]model.Raffle, error) {
	var raffles []model.Raffle
	err := GetTx(ctx, r.db).
		Where("drawn = ? AND draw_time <= ?", false, now).
		Order("id").
		Find(&raffles).Error
	if err != nil {
		return nil, err
	}

	return raffles, nil
}
