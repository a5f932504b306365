package repository

import (
	"context"
	"errors"

	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("EVENT_NOT_FOUND")

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
	ListGuests(ctx context.Context, eventID uint64) ([]model.User, error)
	IsGuest(ctx context.Context, eventID, userID uint64) (bool, error)
	IsOrganizer(ctx context.Context, eventID, userID uint64) (bool, error)
	// ConsumePool moves amount from points_remain to points_awarded. The
	// guard on points_remain keeps the pool non-negative under concurrent
	// awards; an insufficient pool surfaces as ErrNoRowsAffected.
	ConsumePool(ctx context.Context, eventID uint64, amount int64) error
	Update(ctx context.Context, event *model.Event) error
}

type event struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &event{db: db}
}

func (r *event) Create(ctx context.Context, e *model.Event) error {
	return GetTx(ctx, r.db).Create(e).Error
}

func (r *event) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	var e model.Event
	err := GetTx(ctx, r.db).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *event) ListGuests(ctx context.Context, eventID uint64) ([]model.User, error) {
	var guests []model.User
	err := GetTx(ctx, r.db).
		Joins("JOIN event_guests ON event_guests.user_id = users.id").
		Where("event_guests.event_id = ?", eventID).
		Order("users.id").
		Find(&guests).Error
	if err != nil {
		return nil, err
	}

	return guests, nil
}

func (r *event) IsGuest(ctx context.Context, eventID, userID uint64) (bool, error) {
	var count int64
	err := GetTx(ctx, r.db).Table("event_guests").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *event) IsOrganizer(ctx context.Context, eventID, userID uint64) (bool, error) {
	var count int64
	err := GetTx(ctx, r.db).Table("event_organizers").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *event) ConsumePool(ctx context.Context, eventID uint64, amount int64) error {
	res := GetTx(ctx, r.db).Model(&model.Event{}).
		Where("id = ? AND points_remain >= ?", eventID, amount).
		Updates(map[string]interface{}{
			"points_remain":  gorm.Expr("points_remain - ?", amount),
			"points_awarded": gorm.Expr("points_awarded + ?", amount),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (r *event) Update(ctx context.Context, e *model.Event) error {
	return GetTx(ctx, r.db).Save(e).Error
}
