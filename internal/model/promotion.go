package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromotionType string

const (
	PromotionTypeAutomatic PromotionType = "automatic"
	PromotionTypeOneTime   PromotionType = "onetime"
)

// Promotion windows are half-open: active when StartTime <= now < EndTime.
// Rate is bonus points per dollar in units of 0.01 (rate 0.02 pays 2 extra
// points per dollar spent). Points is a flat bonus on top.
type Promotion struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	Name        string          `gorm:"column:name;type:varchar(100);not null"`
	Description string          `gorm:"column:description;type:varchar(255)"`
	Type        PromotionType   `gorm:"column:type;type:varchar(16);not null"`
	StartTime   time.Time       `gorm:"column:start_time;not null"`
	EndTime     time.Time       `gorm:"column:end_time;not null"`
	MinSpending decimal.Decimal `gorm:"column:min_spending;type:decimal(10,2);not null;default:0"`
	Rate        decimal.Decimal `gorm:"column:rate;type:decimal(6,4);not null;default:0"`
	Points      int64           `gorm:"column:points;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (Promotion) TableName() string {
	return "promotions"
}
