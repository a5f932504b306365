package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound = errors.New("USER_NOT_FOUND")
	ErrUserExists   = errors.New("USER_EXISTED")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByUTORid(ctx context.Context, utorid string) (*model.User, error)
	// GetForUpdate locks the row for the remainder of the surrounding
	// transaction so a balance check and the following write are serialized.
	GetForUpdate(ctx context.Context, id uint64) (*model.User, error)
	AddPoints(ctx context.Context, id uint64, delta int64) error
	Update(ctx context.Context, user *model.User) error
}

type user struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &user{db: db}
}

func (r *user) Create(ctx context.Context, u *model.User) error {
	err := GetTx(ctx, r.db).Create(u).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrUserExists
	}

	return err
}

func (r *user) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := GetTx(ctx, r.db).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *user) GetByUTORid(ctx context.Context, utorid string) (*model.User, error) {
	var u model.User
	err := GetTx(ctx, r.db).Where("utorid = ?", utorid).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *user) GetForUpdate(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := GetTx(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *user) AddPoints(ctx context.Context, id uint64, delta int64) error {
	return GetTx(ctx, r.db).Model(&model.User{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", delta)).Error
}

func (r *user) Update(ctx context.Context, u *model.User) error {
	err := GetTx(ctx, r.db).Save(u).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrUserExists
	}

	return err
}
